package router

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/adapter/api/handler"
	"vibely/internal/adapter/api/middleware"
)

func SetupVideoRouter(e *echo.Echo, videoHandler *handler.VideoHandler, authMiddleware *middleware.AuthMiddleware) {
	videoGroup := e.Group("/v1/videos")
	videoGroup.Use(authMiddleware.Authenticate)

	videoGroup.POST("", videoHandler.CreateVideo)
	videoGroup.GET("", videoHandler.ListVideos)
}
