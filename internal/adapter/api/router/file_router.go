package router

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/adapter/api/handler"
	"stacksphere/internal/adapter/api/middleware"
	"stacksphere/internal/infrastructure/ratelimit"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware, limiter *ratelimit.RateLimiter) {
	fileHandler := handler.GetFileHandler()

	uploads := e.Group("/v1/uploads")
	uploads.Use(authMiddleware.Authenticate, roleMiddleware.UserOnly)
	uploads.POST("/product-image", fileHandler.UploadProductImage, middleware.RateLimit(limiter, ActionUpload))
}
