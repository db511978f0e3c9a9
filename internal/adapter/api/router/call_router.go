package router

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/adapter/api/handler"
	"vibely/internal/adapter/api/middleware"
)

func SetupCallRouter(e *echo.Echo, callHandler *handler.CallHandler, authMiddleware *middleware.AuthMiddleware) {
	callGroup := e.Group("/v1/calls")
	callGroup.Use(authMiddleware.Authenticate)

	callGroup.POST("", callHandler.PlaceCall)
	callGroup.GET("", callHandler.ListCalls)
	callGroup.PUT("/:id/end", callHandler.EndCall)
}
