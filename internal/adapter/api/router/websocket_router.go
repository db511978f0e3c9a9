package router

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/adapter/api/handler"
)

// SetupWebSocketRouter wires the live-subscription endpoint. Authentication
// happens inside the handler via the token query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
