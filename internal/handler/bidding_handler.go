package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/middleware"
	"github.com/yourorg/buildbid/internal/model"
	"github.com/yourorg/buildbid/internal/service"
)

// BiddingHandler handles bid request and bid HTTP requests
type BiddingHandler struct {
	biddingService *service.BiddingService
	logger         *zap.Logger
}

// NewBiddingHandler creates a new bidding handler
func NewBiddingHandler(biddingService *service.BiddingService, logger *zap.Logger) *BiddingHandler {
	return &BiddingHandler{
		biddingService: biddingService,
		logger:         logger,
	}
}

// ListOpenRequests handles listing open bid requests with their aggregates
// GET /api/v1/bid-requests
func (h *BiddingHandler) ListOpenRequests(c *gin.Context) {
	requests, err := h.biddingService.ListOpenRequestsWithStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list open bid requests", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ListMyRequests handles listing the caller's bid requests
// GET /api/v1/bid-requests/mine
func (h *BiddingHandler) ListMyRequests(c *gin.Context) {
	requests, err := h.biddingService.ListRequestsByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// CreateRequest handles posting a new bid request
// POST /api/v1/bid-requests
func (h *BiddingHandler) CreateRequest(c *gin.Context) {
	var request model.BidRequestCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.biddingService.CreateBidRequest(c.Request.Context(), middleware.UserID(c), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListBids handles listing the bids on a request, cheapest first
// GET /api/v1/bid-requests/:id/bids
func (h *BiddingHandler) ListBids(c *gin.Context) {
	bids, err := h.biddingService.ListBidsForRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}

// SubmitBid handles a vendor submitting a bid
// POST /api/v1/bids
func (h *BiddingHandler) SubmitBid(c *gin.Context) {
	var request model.BidCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, err := h.biddingService.SubmitBid(c.Request.Context(), middleware.UserID(c), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bid)
}

// AcceptBid handles the request owner accepting a bid
// POST /api/v1/bids/:id/accept
func (h *BiddingHandler) AcceptBid(c *gin.Context) {
	bid, err := h.biddingService.AcceptBid(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bid)
}
