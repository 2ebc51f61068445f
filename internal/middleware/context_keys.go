package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is used for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey     = contextKey("logger")
	userIDKey        = contextKey("userID")
	workplacesKey    = contextKey("workplaces")
	authMethodKey    = contextKey("authMethod")
	allWorkplacesTag = "*"
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok && userID != ""
	}
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetAllowedWorkplaces returns the workplaces the caller may act on.
// A single "*" entry grants every workplace.
func GetAllowedWorkplaces(c *gin.Context) []string {
	if v, exists := c.Get(string(workplacesKey)); exists {
		if ws, ok := v.([]string); ok {
			return ws
		}
	}
	ws, _ := c.Request.Context().Value(workplacesKey).([]string)
	return ws
}

// withIdentity stores the caller identity in both the gin and the request context.
func withIdentity(c *gin.Context, userID string, workplaces []string, method string) {
	c.Set(string(userIDKey), userID)
	c.Set(string(workplacesKey), workplaces)
	c.Set(string(authMethodKey), method)

	ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, workplacesKey, workplaces)
	c.Request = c.Request.WithContext(ctx)
}
