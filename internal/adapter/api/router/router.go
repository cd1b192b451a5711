package router

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/adapter/api/middleware"
	"stacksphere/internal/infrastructure/ratelimit"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware, limiter *ratelimit.RateLimiter) {
	SetupHealthRouter(e)
	SetupAuthRouter(e, authMiddleware, roleMiddleware, limiter)
	SetupUserRouter(e, authMiddleware, roleMiddleware)
	SetupProductRouter(e, authMiddleware, roleMiddleware, limiter)
	SetupReviewRouter(e, authMiddleware, roleMiddleware, limiter)
	SetupFileRouter(e, authMiddleware, roleMiddleware, limiter)
	SetupModeratorRouter(e, authMiddleware, roleMiddleware)
	SetupAdminRouter(e, authMiddleware, roleMiddleware)
	SetupCouponRouter(e, authMiddleware, roleMiddleware)
	SetupPaymentRouter(e, authMiddleware, roleMiddleware, limiter)
}
