package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	apiKeyHeader    = "X-API-Key"
	serviceUserID   = "service"
	apiKeyAuthLabel = "api_key"
)

// APIKeyAuth authenticates machine callers by comparing the X-API-Key header with a
// bcrypt hash. Matching callers act as the "service" user on every workplace and
// skip JWT validation. Without a configured hash the middleware is a no-op.
func APIKeyAuth(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if keyHash == "" || key == "" {
			c.Next()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("API key rejected", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		withIdentity(c, serviceUserID, []string{allWorkplacesTag}, apiKeyAuthLabel)
		c.Next()
	}
}
