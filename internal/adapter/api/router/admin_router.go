package router

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/adapter/api/handler"
	"stacksphere/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate, roleMiddleware.AdminOnly)

	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:email/role", adminHandler.ChangeRole)
	admin.DELETE("/users/:email", adminHandler.DeleteUser)

	admin.GET("/coupons", adminHandler.ListCoupons)
	admin.POST("/coupons", adminHandler.CreateCoupon)
	admin.PUT("/coupons/:code", adminHandler.UpdateCoupon)
	admin.DELETE("/coupons/:code", adminHandler.DeleteCoupon)

	admin.GET("/statistics", adminHandler.Statistics)
}
