package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
	_ "time/tzdata" // zone names resolve in images without a system zoneinfo

	"github.com/gin-gonic/gin"
)

// viewerLocationKey stores the time zone month- and quarter-to-date figures
// are computed in for the current request.
const viewerLocationKey = contextKey("viewerLocation")

// TimezoneQueryParam overrides the token's tz claim for a single request.
const TimezoneQueryParam = "tz"

// WithViewerLocation returns a copy of ctx carrying the viewer's time zone.
func WithViewerLocation(ctx context.Context, loc *time.Location) context.Context {
	if loc == nil {
		return ctx
	}
	return context.WithValue(ctx, viewerLocationKey, loc)
}

// ViewerLocationFromCtx returns the viewer's time zone, or nil when the
// request did not supply one.
func ViewerLocationFromCtx(ctx context.Context) *time.Location {
	loc, _ := ctx.Value(viewerLocationKey).(*time.Location)
	return loc
}

// ViewerLocation resolves the ?tz= query parameter as an IANA zone name and
// stores it on the request context, replacing any zone taken from the token.
// An unknown zone is rejected with 400.
func ViewerLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Query(TimezoneQueryParam)
		if name == "" {
			c.Next()
			return
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("Unknown viewer time zone", slog.String("tz", name))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown time zone: " + name})
			return
		}
		c.Request = c.Request.WithContext(WithViewerLocation(c.Request.Context(), loc))
		c.Next()
	}
}
