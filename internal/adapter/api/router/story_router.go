package router

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/adapter/api/handler"
	"vibely/internal/adapter/api/middleware"
)

func SetupStoryRouter(e *echo.Echo, storyHandler *handler.StoryHandler, authMiddleware *middleware.AuthMiddleware) {
	storyGroup := e.Group("/v1/stories")
	storyGroup.Use(authMiddleware.Authenticate)

	storyGroup.POST("", storyHandler.CreateStory)
	storyGroup.GET("", storyHandler.ListActive)
	storyGroup.GET("/users/:userId", storyHandler.ListByUser)
}
