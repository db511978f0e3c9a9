package router

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/adapter/api/handler"
	"vibely/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	userGroup := e.Group("/v1/users")
	userGroup.Use(authMiddleware.Authenticate)

	userGroup.GET("", userHandler.ListUsers)
	userGroup.GET("/me", userHandler.GetMe)
	userGroup.PATCH("/me", userHandler.UpdateMe)
	userGroup.GET("/:id", userHandler.GetUser)
}
