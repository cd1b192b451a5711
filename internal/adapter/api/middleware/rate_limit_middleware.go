package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"stacksphere/internal/infrastructure/ratelimit"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

// RateLimit throttles action per signed-in user, falling back to the client
// IP for anonymous requests.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if session, ok := SessionFromContext(c); ok {
				key = session.Email
			}

			allowed, wait := limiter.Allow(key, action)
			if !allowed {
				retryAfter := int(math.Ceil(wait.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				logger.Warn("RATE LIMIT: %s blocked on %s (retry in %ds)", key, action, retryAfter)
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return errors.TooManyRequests("Rate limit exceeded", retryAfter)
			}

			return next(c)
		}
	}
}
