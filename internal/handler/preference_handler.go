package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/middleware"
	"github.com/yourorg/buildbid/internal/model"
	"github.com/yourorg/buildbid/internal/service"
)

// PreferenceHandler handles notification preference HTTP requests
type PreferenceHandler struct {
	preferenceService *service.PreferenceService
	logger            *zap.Logger
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferenceService *service.PreferenceService, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		logger:            logger,
	}
}

// Get handles fetching the caller's preferences
// GET /api/v1/preferences
func (h *PreferenceHandler) Get(c *gin.Context) {
	prefs, err := h.preferenceService.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// Update handles a partial preferences update
// PATCH /api/v1/preferences
func (h *PreferenceHandler) Update(c *gin.Context) {
	var request model.PreferencesUpdate
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.preferenceService.Update(c.Request.Context(), middleware.UserID(c), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}
