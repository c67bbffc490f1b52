package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourorg/buildbid/internal/client"
	"github.com/yourorg/buildbid/internal/service"
)

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		return
	}

	var perr *client.ProviderError
	if errors.As(err, &perr) {
		switch perr.Kind {
		case client.KindRateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Provider rate limit exceeded"})
		case client.KindPaymentRequired:
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Provider billing issue"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Provider error"})
		}
		return
	}

	switch {
	case errors.Is(err, service.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
