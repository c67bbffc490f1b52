package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/events"
	"github.com/yourorg/buildbid/internal/service"
)

// WebhookHandler accepts row change events over HTTP, mirroring the Kafka
// consumer path for deployments without a broker
type WebhookHandler struct {
	dispatcher *service.DispatchService
	logger     *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(dispatcher *service.DispatchService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// HandleChangeEvent handles a posted change event and reports the outcome
// POST /api/v1/webhooks/change-events
func (h *WebhookHandler) HandleChangeEvent(c *gin.Context) {
	var event events.ChangeEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.dispatcher.Dispatch(c.Request.Context(), event)

	status := http.StatusOK
	if outcome.Status == service.OutcomeFailed {
		status = http.StatusInternalServerError
	}
	c.JSON(status, outcome)
}
