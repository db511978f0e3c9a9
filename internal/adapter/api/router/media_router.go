package router

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/adapter/api/handler"
	"vibely/internal/adapter/api/middleware"
)

func SetupMediaRouter(e *echo.Echo, mediaHandler *handler.MediaHandler, authMiddleware *middleware.AuthMiddleware) {
	mediaGroup := e.Group("/v1/media")
	mediaGroup.Use(authMiddleware.Authenticate)

	mediaGroup.POST("/upload", mediaHandler.Upload)
	mediaGroup.DELETE("", mediaHandler.Delete)
}
