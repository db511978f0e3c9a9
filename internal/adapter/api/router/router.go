package router

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/adapter/api/handler"
	"vibely/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Chat      *handler.ChatHandler
	Post      *handler.PostHandler
	Story     *handler.StoryHandler
	Call      *handler.CallHandler
	Video     *handler.VideoHandler
	Media     *handler.MediaHandler
	WebSocket *handler.WebSocketHandler
	Health    *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	SetupHealthRouter(e, h.Health)
	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupUserRouter(e, h.User, authMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupPostRouter(e, h.Post, authMiddleware)
	SetupStoryRouter(e, h.Story, authMiddleware)
	SetupCallRouter(e, h.Call, authMiddleware)
	SetupVideoRouter(e, h.Video, authMiddleware)
	SetupMediaRouter(e, h.Media, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
}
