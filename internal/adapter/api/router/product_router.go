package router

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/adapter/api/handler"
	"stacksphere/internal/adapter/api/middleware"
	"stacksphere/internal/infrastructure/ratelimit"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware, limiter *ratelimit.RateLimiter) {
	productHandler := handler.GetProductHandler()

	products := e.Group("/v1/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/featured", productHandler.Featured)
	products.GET("/trending", productHandler.Trending)

	productDetail := e.Group("/v1/products")
	productDetail.Use(authMiddleware.Authenticate, roleMiddleware.UserOnly)
	productDetail.GET("/:id", productHandler.GetProduct)
	productDetail.POST("/:id/upvote", productHandler.Upvote, middleware.RateLimit(limiter, ActionUpvote))
	productDetail.POST("/:id/report", productHandler.Report, middleware.RateLimit(limiter, ActionReport))

	myProducts := e.Group("/v1/me/products")
	myProducts.Use(authMiddleware.Authenticate, roleMiddleware.UserOnly)
	myProducts.GET("", productHandler.ListMyProducts)
	myProducts.POST("", productHandler.CreateProduct, middleware.RateLimit(limiter, ActionSubmit))
	myProducts.PUT("/:id", productHandler.UpdateProduct)
	myProducts.DELETE("/:id", productHandler.DeleteProduct)
}
