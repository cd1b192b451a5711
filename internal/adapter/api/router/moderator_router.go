package router

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/adapter/api/handler"
	"stacksphere/internal/adapter/api/middleware"
)

func SetupModeratorRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	moderationHandler := handler.GetModerationHandler()

	moderator := e.Group("/v1/moderator")
	moderator.Use(authMiddleware.Authenticate, roleMiddleware.ModeratorOnly)
	moderator.GET("/board", moderationHandler.Board)
	moderator.POST("/products/:id/accept", moderationHandler.Accept)
	moderator.POST("/products/:id/reject", moderationHandler.Reject)
	moderator.POST("/products/:id/feature", moderationHandler.Feature)
	moderator.DELETE("/reported/:id", moderationHandler.DeleteReported)
	moderator.POST("/reported/:id/dismiss", moderationHandler.DismissReport)
}
