package router

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/adapter/api/handler"
	"vibely/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all conversation routes (excluding WebSocket).
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/v1/conversations")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("", chatHandler.StartConversation)
	chatGroup.GET("", chatHandler.ListConversations)
	chatGroup.GET("/:id", chatHandler.GetConversation)
	chatGroup.PUT("/:id/read", chatHandler.MarkAsRead)

	chatGroup.POST("/:id/messages", chatHandler.SendMessage)
	chatGroup.GET("/:id/messages", chatHandler.ListMessages)
	chatGroup.POST("/:id/messages/:messageId/reactions", chatHandler.AddReaction)
}
