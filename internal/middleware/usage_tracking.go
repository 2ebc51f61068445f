package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UsageSink receives one analytics event per successful API call.
type UsageSink interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// untrackedPaths are never reported.
var untrackedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// UsageTracking reports successful authenticated calls to sink as
// "ledger_api.<method>.<route>" events, keyed by the calling user.
func UsageTracking(sink UsageSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sink == nil || !sink.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		route := c.FullPath()
		if route == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       route,
			"status_code": c.Writer.Status(),
		}
		if workplaceID := c.Param("workplaceID"); workplaceID != "" {
			props["workplace_id"] = workplaceID
		}
		sink.Enqueue(userID, usageEventName(c.Request.Method, route), props)
	}
}

// usageEventName turns GET /api/v1/workplaces/:workplaceID/accounts into
// ledger_api.get.workplaces_accounts.
func usageEventName(method, route string) string {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" || p == "api" || p == "v1" || strings.HasPrefix(p, ":") || strings.HasPrefix(p, "*") {
			continue
		}
		kept = append(kept, strings.ReplaceAll(p, "-", "_"))
	}
	return "ledger_api." + strings.ToLower(method) + "." + strings.Join(kept, "_")
}
