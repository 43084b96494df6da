package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewRateLimiter builds a limiter from a formatted rate such as "100-M".
// Counters live in redis when a client is given so that every replica shares
// them; otherwise they are kept in process memory.
func NewRateLimiter(formattedRate string, redisClient *redis.Client, logger *slog.Logger) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formattedRate, err)
	}

	if redisClient == nil {
		logger.Info("Using in-memory rate limit store", slog.String("rate", formattedRate))
		return limiter.New(memory.NewStore(), rate), nil
	}

	store, err := redisstore.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: "engagement_rate_limit"})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}
	logger.Info("Using redis rate limit store", slog.String("rate", formattedRate))
	return limiter.New(store, rate), nil
}

// RateLimit creates a Gin middleware for rate limiting requests.
// It uses the provided limiter instance.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		context, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprint(context.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprint(context.Remaining))

		if context.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", context.Limit), slog.Int64("remaining_requests", context.Remaining))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
