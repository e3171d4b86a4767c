package notification

import (
	"github.com/Akius1/cv-review-sub000/core/database"
	"github.com/Akius1/cv-review-sub000/core/middleware"
	"github.com/Akius1/cv-review-sub000/modules/notification/controller"
	"github.com/Akius1/cv-review-sub000/modules/notification/repository"
	"github.com/Akius1/cv-review-sub000/modules/notification/router"
	"github.com/Akius1/cv-review-sub000/modules/notification/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init wires the notification module and returns its service so other
// modules can dispatch notifications.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, asynqClient *asynq.Client) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, asynqClient)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
