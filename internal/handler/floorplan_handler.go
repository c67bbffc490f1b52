package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/middleware"
	"github.com/yourorg/buildbid/internal/model"
	"github.com/yourorg/buildbid/internal/service"
)

// FloorPlanHandler handles floor plan generation HTTP requests
type FloorPlanHandler struct {
	floorPlanService *service.FloorPlanService
	logger           *zap.Logger
}

// NewFloorPlanHandler creates a new floor plan handler
func NewFloorPlanHandler(floorPlanService *service.FloorPlanService, logger *zap.Logger) *FloorPlanHandler {
	return &FloorPlanHandler{
		floorPlanService: floorPlanService,
		logger:           logger,
	}
}

// Generate handles generating a floor plan image
// POST /api/v1/floor-plans
func (h *FloorPlanHandler) Generate(c *gin.Context) {
	var request model.FloorPlanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.floorPlanService.Generate(c.Request.Context(), middleware.UserID(c), &request)
	if err != nil {
		h.logger.Error("failed to generate floor plan", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// List handles listing the caller's floor plans
// GET /api/v1/floor-plans
func (h *FloorPlanHandler) List(c *gin.Context) {
	plans, err := h.floorPlanService.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// Get handles fetching one of the caller's floor plans
// GET /api/v1/floor-plans/:id
func (h *FloorPlanHandler) Get(c *gin.Context) {
	plan, err := h.floorPlanService.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
