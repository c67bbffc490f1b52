package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/events"
	"github.com/yourorg/buildbid/internal/model"
)

// BidRequestStore is the persistence surface the bidding service needs
// for bid requests.
type BidRequestStore interface {
	Create(ctx context.Context, req *model.BidRequest) error
	GetByID(ctx context.Context, id string) (*model.BidRequest, error)
	ListOpen(ctx context.Context) ([]model.BidRequest, error)
	ListByUser(ctx context.Context, userID string) ([]model.BidRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// BidStore is the persistence surface the bidding service needs for bids.
type BidStore interface {
	Create(ctx context.Context, bid *model.Bid) error
	GetByID(ctx context.Context, id string) (*model.Bid, error)
	ListForRequest(ctx context.Context, requestID string) ([]model.BidWithVendor, error)
	PricesByRequests(ctx context.Context, requestIDs []string) (map[string][]float64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	RejectOthers(ctx context.Context, requestID, acceptedBidID string) error
}

// StatsStore caches derived bid request aggregates.
type StatsStore interface {
	Get(ctx context.Context, requestID string) (*model.BidRequestStats, error)
	Set(ctx context.Context, requestID string, stats model.BidRequestStats)
	Invalidate(ctx context.Context, requestID string)
}

// VendorStore resolves vendor profiles for bid submission.
type VendorStore interface {
	GetByID(ctx context.Context, id string) (*model.VendorProfile, error)
	GetByUser(ctx context.Context, userID string) (*model.VendorProfile, error)
}

// CostStore records cost entries against projects.
type CostStore interface {
	AddCost(ctx context.Context, cost *model.ProjectCost) error
}

// BiddingService handles bid requests, bids, and their derived aggregates
type BiddingService struct {
	requests  BidRequestStore
	bids      BidStore
	vendors   VendorStore
	stats     StatsStore
	costs     CostStore
	publisher events.Publisher
	logger    *zap.Logger
}

// NewBiddingService creates a new bidding service
func NewBiddingService(requests BidRequestStore, bids BidStore, vendors VendorStore, stats StatsStore, costs CostStore, publisher events.Publisher, logger *zap.Logger) *BiddingService {
	return &BiddingService{
		requests:  requests,
		bids:      bids,
		vendors:   vendors,
		stats:     stats,
		costs:     costs,
		publisher: publisher,
		logger:    logger,
	}
}

// ComputeStats derives the aggregate for one request from its bid prices
func ComputeStats(prices []float64) model.BidRequestStats {
	stats := model.BidRequestStats{BidCount: len(prices)}
	if len(prices) == 0 {
		return stats
	}

	min := prices[0]
	for _, p := range prices[1:] {
		if p < min {
			min = p
		}
	}
	stats.LowestBid = &min
	return stats
}

// ListOpenRequestsWithStats returns all open bid requests, newest first,
// each carrying its bid count and lowest bid. Stats are served from cache
// where possible and recomputed in one batch for the rest.
func (s *BiddingService) ListOpenRequestsWithStats(ctx context.Context) ([]model.BidRequestWithStats, error) {
	requests, err := s.requests.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	cached := make(map[string]model.BidRequestStats, len(requests))
	missing := []string{}
	for _, req := range requests {
		if hit, _ := s.stats.Get(ctx, req.ID); hit != nil {
			cached[req.ID] = *hit
		} else {
			missing = append(missing, req.ID)
		}
	}

	if len(missing) > 0 {
		prices, err := s.bids.PricesByRequests(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, id := range missing {
			stats := ComputeStats(prices[id])
			cached[id] = stats
			s.stats.Set(ctx, id, stats)
		}
	}

	result := make([]model.BidRequestWithStats, 0, len(requests))
	for _, req := range requests {
		result = append(result, model.BidRequestWithStats{
			BidRequest:      req,
			BidRequestStats: cached[req.ID],
		})
	}

	return result, nil
}

// ListBidsForRequest returns the bids on a request with vendor details,
// cheapest first
func (s *BiddingService) ListBidsForRequest(ctx context.Context, requestID string) ([]model.BidWithVendor, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}

	return s.bids.ListForRequest(ctx, requestID)
}

// ListRequestsByUser returns the bid requests a user has posted
func (s *BiddingService) ListRequestsByUser(ctx context.Context, userID string) ([]model.BidRequest, error) {
	return s.requests.ListByUser(ctx, userID)
}

// CreateBidRequest validates and persists a new bid request. Validation
// runs before any write, so a rejected request leaves no trace.
func (s *BiddingService) CreateBidRequest(ctx context.Context, userID string, create *model.BidRequestCreate) (*model.BidRequest, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if create.Title == "" {
		return nil, NewValidationError("title", "title is required")
	}
	if create.Description == "" {
		return nil, NewValidationError("description", "description is required")
	}
	if create.Category == "" {
		return nil, NewValidationError("category", "category is required")
	}
	if !model.BidRequestCategories[create.Category] {
		return nil, NewValidationError("category", "unknown category")
	}
	if create.Unit == "" {
		return nil, NewValidationError("unit", "unit is required")
	}
	if create.DeliveryLocation == "" {
		return nil, NewValidationError("delivery_location", "delivery location is required")
	}

	quantity, err := strconv.ParseFloat(create.Quantity, 64)
	if err != nil || quantity <= 0 {
		return nil, NewValidationError("quantity", "quantity must be a positive number")
	}

	var budget *float64
	if create.Budget != "" {
		b, err := strconv.ParseFloat(create.Budget, 64)
		if err != nil || b < 0 {
			return nil, NewValidationError("budget", "budget must be a non-negative number")
		}
		budget = &b
	}

	var deadline *time.Time
	if create.DeliveryDeadline != "" {
		d, err := time.Parse("2006-01-02", create.DeliveryDeadline)
		if err != nil {
			return nil, NewValidationError("delivery_deadline", "invalid date")
		}
		deadline = &d
	}

	var projectID *string
	if create.ProjectID != "" {
		projectID = &create.ProjectID
	}

	now := time.Now().UTC()
	req := &model.BidRequest{
		ID:               uuid.NewString(),
		UserID:           userID,
		ProjectID:        projectID,
		Title:            create.Title,
		Description:      create.Description,
		Category:         create.Category,
		Quantity:         quantity,
		Unit:             create.Unit,
		Budget:           budget,
		DeliveryLocation: create.DeliveryLocation,
		DeliveryDeadline: deadline,
		Status:           model.BidRequestStatusOpen,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

// SubmitBid validates and persists a vendor's bid, invalidates the cached
// aggregate for the request, and publishes the row change.
func (s *BiddingService) SubmitBid(ctx context.Context, userID string, create *model.BidCreate) (*model.Bid, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if create.Price <= 0 {
		return nil, NewValidationError("price", "price must be a positive number")
	}
	if create.DeliveryTimeDays <= 0 {
		return nil, NewValidationError("delivery_time_days", "delivery time must be a positive number of days")
	}

	req, err := s.requests.GetByID(ctx, create.BidRequestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	if req.Status != model.BidRequestStatusOpen {
		return nil, NewValidationError("bid_request_id", "bid request is not open")
	}

	vendor, err := s.vendors.GetByID(ctx, create.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, NewValidationError("vendor_id", "vendor profile not found")
	}
	if vendor.UserID == nil || *vendor.UserID != userID {
		return nil, ErrForbidden
	}

	var notes *string
	if create.Notes != "" {
		notes = &create.Notes
	}

	now := time.Now().UTC()
	bid := &model.Bid{
		ID:               uuid.NewString(),
		BidRequestID:     create.BidRequestID,
		VendorID:         create.VendorID,
		Price:            create.Price,
		DeliveryTimeDays: create.DeliveryTimeDays,
		Notes:            notes,
		Status:           model.BidStatusSubmitted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.bids.Create(ctx, bid); err != nil {
		return nil, err
	}

	s.stats.Invalidate(ctx, bid.BidRequestID)
	publishChange(ctx, s.publisher, s.logger, events.TypeInsert, events.TableBids, bid, nil)

	return bid, nil
}

// AcceptBid marks a bid as accepted, rejects the request's other bids, and
// closes the request as awarded. Only the request owner may accept.
func (s *BiddingService) AcceptBid(ctx context.Context, userID, bidID string) (*model.Bid, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, ErrNotFound
	}

	req, err := s.requests.GetByID(ctx, bid.BidRequestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	if req.UserID != userID {
		return nil, ErrForbidden
	}
	if req.Status != model.BidRequestStatusOpen {
		return nil, NewValidationError("bid_request_id", "bid request is not open")
	}

	if err := s.bids.UpdateStatus(ctx, bidID, model.BidStatusAccepted); err != nil {
		return nil, err
	}
	if err := s.bids.RejectOthers(ctx, bid.BidRequestID, bidID); err != nil {
		return nil, err
	}
	if err := s.requests.UpdateStatus(ctx, bid.BidRequestID, model.BidRequestStatusAwarded); err != nil {
		return nil, err
	}

	// Requests tied to a project book the accepted price as a cost entry.
	if req.ProjectID != nil {
		now := time.Now().UTC()
		cost := &model.ProjectCost{
			ID:          uuid.NewString(),
			ProjectID:   *req.ProjectID,
			BidID:       &bid.ID,
			Category:    req.Category,
			Description: "Accepted bid: " + req.Title,
			Amount:      bid.Price,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.costs.AddCost(ctx, cost); err != nil {
			return nil, err
		}
	}

	s.stats.Invalidate(ctx, bid.BidRequestID)

	bid.Status = model.BidStatusAccepted
	return bid, nil
}
