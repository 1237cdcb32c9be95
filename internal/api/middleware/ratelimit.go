package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-composable-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
	"github.com/feral-file/ff-composable-ledger/internal/ratelimit"
)

const RATE_LIMIT_REMAINING_HEADER = "X-RateLimit-Remaining"

// RateLimit returns a gin middleware limiting requests per authenticated subject, or per
// client IP when the request carries no subject. A nil limiter disables limiting. Requests
// pass when the limiter itself fails.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if subject := c.GetString(AUTH_SUBJECT_KEY); subject != "" {
			key = "sub:" + subject
		}

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Rate limiter unavailable, allowing request",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			c.Next()
			return
		}

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierrors.NewRateLimitedError("Too many requests", decision.RetryAfter.String()))
			return
		}

		c.Header(RATE_LIMIT_REMAINING_HEADER, strconv.Itoa(decision.Remaining))
		c.Next()
	}
}
