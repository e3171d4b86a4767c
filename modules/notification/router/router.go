package router

import (
	"github.com/Akius1/cv-review-sub000/core/middleware"
	"github.com/Akius1/cv-review-sub000/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	NotificationController *controller.NotificationController
}

func NewNotificationRouter(notificationController *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{NotificationController: notificationController}
}

func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	notifRoutes := privateRoutes.Group("/notifications", mw.AuthMiddleware())
	notifRoutes.GET("", r.NotificationController.GetMyNotifications)
	notifRoutes.GET("/unread-count", r.NotificationController.CountUnread)
	notifRoutes.PUT("/read", r.NotificationController.MarkAsRead)
	notifRoutes.PUT("/read-all", r.NotificationController.MarkAllAsRead)
}
