package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// LedgerClaims are the JWT claims accepted by the API. Subject is the acting user,
// Workplaces the tenants the token may touch.
type LedgerClaims struct {
	Workplaces []string `json:"workplaces"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
// Requests already authenticated by another method (API key) pass through.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		if authMethod, exists := c.Get(string(authMethodKey)); exists {
			logger.Debug("Auth already done", slog.Any("auth_method", authMethod))
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims := &LedgerClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			logger.Warn("Invalid token", slog.Any("error", err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		withIdentity(c, claims.Subject, claims.Workplaces, "jwt")
		enriched := logger.With(slog.String("user_id", claims.Subject))
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), enriched))
		c.Next()
	}
}

// RequireWorkplaceAccess rejects requests whose :param workplace is not granted
// to the caller, and scopes the request logger to the workplace.
func RequireWorkplaceAccess(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		workplaceID := c.Param(param)
		logger := GetLoggerFromCtx(c.Request.Context())
		if workplaceID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Workplace ID is required"})
			return
		}

		allowed := GetAllowedWorkplaces(c)
		if !slices.Contains(allowed, allWorkplacesTag) && !slices.Contains(allowed, workplaceID) {
			logger.Warn("Workplace access denied", slog.String("workplace_id", workplaceID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		scoped := logger.With(slog.String("workplace_id", workplaceID))
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), scoped))
		c.Next()
	}
}
