package availability

import (
	"github.com/Akius1/cv-review-sub000/core/clock"
	"github.com/Akius1/cv-review-sub000/core/database"
	"github.com/Akius1/cv-review-sub000/core/middleware"
	"github.com/Akius1/cv-review-sub000/modules/availability/controller"
	"github.com/Akius1/cv-review-sub000/modules/availability/repository"
	"github.com/Akius1/cv-review-sub000/modules/availability/router"
	"github.com/Akius1/cv-review-sub000/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes. The
// slot repository is returned so the booking module can read slots
// through the same authoritative path.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, clk clock.Clock) *repository.SlotRepository {
	repo := repository.NewSlotRepository(db)
	svc := service.NewAvailabilityService(repo, clk)
	ctrl := controller.NewSlotController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
	return repo
}
