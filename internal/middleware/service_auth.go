package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceAuthMiddleware guards internal endpoints, such as the change event
// webhook, behind a shared service key.
func ServiceAuthMiddleware(serviceKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Service-Key")
		if serviceKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(serviceKey)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid service key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
