package router

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/adapter/api/handler"
	"stacksphere/internal/adapter/api/middleware"
)

func SetupCouponRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	couponHandler := handler.GetCouponHandler()

	e.GET("/v1/coupons/active", couponHandler.ActiveCoupons)

	coupons := e.Group("/v1/coupons")
	coupons.Use(authMiddleware.Authenticate, roleMiddleware.UserOnly)
	coupons.POST("/validate", couponHandler.ValidateCoupon)
}
