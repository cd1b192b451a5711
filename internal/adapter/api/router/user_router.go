package router

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/adapter/api/handler"
	"stacksphere/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	userHandler := handler.GetUserHandler()

	me := e.Group("/v1/me")
	me.Use(authMiddleware.Authenticate, roleMiddleware.UserOnly)
	me.GET("", userHandler.GetProfile)
	me.GET("/quota", userHandler.GetQuota)
}
