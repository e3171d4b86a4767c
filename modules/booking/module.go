package booking

import (
	"github.com/Akius1/cv-review-sub000/core/clock"
	"github.com/Akius1/cv-review-sub000/core/database"
	"github.com/Akius1/cv-review-sub000/core/middleware"
	availabilityRepo "github.com/Akius1/cv-review-sub000/modules/availability/repository"
	"github.com/Akius1/cv-review-sub000/modules/booking/controller"
	"github.com/Akius1/cv-review-sub000/modules/booking/repository"
	"github.com/Akius1/cv-review-sub000/modules/booking/router"
	"github.com/Akius1/cv-review-sub000/modules/booking/service"
	meetingService "github.com/Akius1/cv-review-sub000/modules/meeting/service"
	notificationService "github.com/Akius1/cv-review-sub000/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init wires the booking module against the slot store, the meeting
// link provisioner, and the notification dispatcher.
func Init(
	e *echo.Echo,
	db database.Database,
	mw *middleware.Middleware,
	slotRepo *availabilityRepo.SlotRepository,
	provisioner meetingService.Provisioner,
	notifier notificationService.Notifier,
	clk clock.Clock,
) {
	repo := repository.NewBookingRepository(db)
	svc := service.NewBookingService(repo, slotRepo, provisioner, notifier, clk)
	ctrl := controller.NewBookingController(svc)
	rtr := router.NewBookingRouter(ctrl)

	rtr.Setup(e, mw)
}
