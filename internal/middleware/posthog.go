package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/ipo_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware records one analytics event per successful state-changing request.
// Reads are not tracked. The event name is derived from the route template, so
// POST /api/v1/subscriptions/:subscriptionID/cancel becomes "api_post_subscriptions_cancel".
func PosthogMiddleware(tracker *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !tracker.IsInitialized() || c.Request.Method == http.MethodGet {
			return
		}
		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		name := routeEventName(c.Request.Method, c.FullPath())
		if name == "" {
			return
		}

		props := map[string]any{
			"status_code": status,
			"role":        GetUserRoleFromContext(c),
		}
		for _, p := range c.Params {
			props[p.Key] = p.Value
		}
		tracker.Enqueue(userID, name, props)
	}
}

func routeEventName(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	parts := []string{"api", strings.ToLower(method)}
	for _, seg := range strings.Split(strings.TrimPrefix(fullPath, "/api/v1"), "/") {
		if seg == "" || strings.HasPrefix(seg, ":") {
			continue
		}
		parts = append(parts, strings.ReplaceAll(seg, "-", "_"))
	}
	return strings.Join(parts, "_")
}
