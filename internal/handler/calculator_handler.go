package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
	"github.com/yourorg/buildbid/internal/service"
)

// CalculatorHandler handles material estimation HTTP requests
type CalculatorHandler struct {
	calculator *service.CalculatorService
	logger     *zap.Logger
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(calculator *service.CalculatorService, logger *zap.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		calculator: calculator,
		logger:     logger,
	}
}

// Estimate handles a material estimation request
// POST /api/v1/calculator/estimate
func (h *CalculatorHandler) Estimate(c *gin.Context) {
	var request model.MaterialInput
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate, err := h.calculator.Estimate(request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimate)
}
