package meeting

import (
	"github.com/Akius1/cv-review-sub000/core/clock"
	"github.com/Akius1/cv-review-sub000/core/database"
	"github.com/Akius1/cv-review-sub000/core/middleware"
	"github.com/Akius1/cv-review-sub000/modules/meeting/controller"
	"github.com/Akius1/cv-review-sub000/modules/meeting/repository"
	"github.com/Akius1/cv-review-sub000/modules/meeting/router"
	"github.com/Akius1/cv-review-sub000/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting module and returns the provisioner for
// the booking coordinator.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, clk clock.Clock) service.Provisioner {
	repo := repository.NewConnectionRepository(db)
	prov := service.NewProvisioner(repo, clk)
	ctrl := controller.NewConnectionController(repo)
	rtr := router.NewMeetingRouter(ctrl)

	rtr.Setup(e, mw)
	return prov
}
