package router

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/adapter/api/handler"
	"stacksphere/internal/adapter/api/middleware"
	"stacksphere/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.Use(authMiddleware.Authenticate, roleMiddleware.UserOnly)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/refresh-role", authHandler.RefreshRole, middleware.RateLimit(limiter, ActionRefreshRole))
}
