package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/tax_engagement_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPaths are never sent to analytics.
var untrackedPaths = map[string]bool{
	"/health":        true,
	"/api/v1/health": true,
}

// trackedParams are the route parameters copied onto events.
var trackedParams = []string{"clientID", "expertID", "assignmentID"}

func shouldTrack(c *gin.Context) bool {
	path := c.Request.URL.Path
	return !untrackedPaths[path] && !strings.HasPrefix(path, "/swagger/")
}

// PosthogMiddleware reports every successful authenticated API call to posthog.
// Failed requests and anonymous traffic are not reported.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || !shouldTrack(c) {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if len(c.Errors) > 0 || status >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		event := EventName(c.Request.Method, c.FullPath())
		if event == "" {
			return
		}

		props := engagementProps(c)
		props["status_code"] = status
		posthogClient.Enqueue(userID, event, props)
	}
}

// PosthogEvent sends a named business event for the authenticated user,
// e.g. "payment_recorded". Request properties are merged into properties.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}

	props := engagementProps(c)
	for k, v := range properties {
		props[k] = v
	}
	posthogClient.Enqueue(userID, eventName, props)
}

// engagementProps collects the request facts attached to every event.
func engagementProps(c *gin.Context) map[string]any {
	props := map[string]any{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"portal": "expert",
	}
	if IsAdmin(c) {
		props["portal"] = RoleAdmin
	}
	for _, name := range trackedParams {
		if v := c.Param(name); v != "" {
			props[name] = v
		}
	}
	return props
}

// EventName derives an analytics event name from a method and route template.
// It returns "" for unmatched routes.
func EventName(method, fullPath string) string {
	path := strings.TrimPrefix(fullPath, "/")
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, ":", "")
	return method + "_" + strings.ReplaceAll(path, "/", "_")
}
