package router

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/adapter/api/handler"
	"stacksphere/internal/adapter/api/middleware"
	"stacksphere/internal/infrastructure/ratelimit"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware, limiter *ratelimit.RateLimiter) {
	reviewHandler := handler.GetReviewHandler()

	reviews := e.Group("/v1/products/:id/reviews")
	reviews.Use(authMiddleware.Authenticate, roleMiddleware.UserOnly)
	reviews.GET("", reviewHandler.ListReviews)
	reviews.POST("", reviewHandler.CreateReview, middleware.RateLimit(limiter, ActionReview))
}
