package router

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/adapter/api/handler"
	"vibely/internal/adapter/api/middleware"
)

func SetupPostRouter(e *echo.Echo, postHandler *handler.PostHandler, authMiddleware *middleware.AuthMiddleware) {
	postGroup := e.Group("/v1/posts")
	postGroup.Use(authMiddleware.Authenticate)

	postGroup.POST("", postHandler.CreatePost)
	postGroup.GET("", postHandler.ListFeed)
	postGroup.GET("/:id", postHandler.GetPost)
	postGroup.PATCH("/:id", postHandler.UpdatePost)
	postGroup.DELETE("/:id", postHandler.DeletePost)

	postGroup.POST("/:id/like", postHandler.LikePost)
	postGroup.POST("/:id/repost", postHandler.RepostPost)

	postGroup.POST("/:id/comments", postHandler.AddComment)
	postGroup.GET("/:id/comments", postHandler.ListComments)
}
