package router

import (
	"github.com/Akius1/cv-review-sub000/core/middleware"
	"github.com/Akius1/cv-review-sub000/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

type MeetingRouter struct {
	ConnectionController *controller.ConnectionController
}

func NewMeetingRouter(connectionController *controller.ConnectionController) *MeetingRouter {
	return &MeetingRouter{ConnectionController: connectionController}
}

func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	calRoutes := privateRoutes.Group("/calendar", mw.AuthMiddleware())
	calRoutes.GET("/connections", r.ConnectionController.ListConnections)
	calRoutes.POST("/connections", r.ConnectionController.SaveConnection)
	calRoutes.DELETE("/connections/:provider", r.ConnectionController.DeleteConnection)
}
