package ratelimit

import (
	"context"
	"math"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Limiter interface {
	Allow(ctx context.Context, key string, rate float64, burst int) (*Result, error)
}

type Policy struct {
	Name  string
	Rate  float64
	Burst int
}

// PerClientIP limits requests per client address. A nil limiter disables
// the check. Limiter failures let the request through.
func PerClientIP(limiter Limiter, policy Policy, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := "ratelimit:" + policy.Name + ":" + c.ClientIP()
		res, err := limiter.Allow(c.Request.Context(), key, policy.Rate, policy.Burst)
		if err != nil {
			log.Warn("rate limit check failed", zap.String("policy", policy.Name), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			response.TooManyRequests(c, "Too many requests, please try again later")
			return
		}

		c.Next()
	}
}
