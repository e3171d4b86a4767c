package router

import (
	"github.com/Akius1/cv-review-sub000/core/constants"
	"github.com/Akius1/cv-review-sub000/core/middleware"
	"github.com/Akius1/cv-review-sub000/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

// AvailabilityRouter handles slot routes
type AvailabilityRouter struct {
	SlotController *controller.SlotController
}

func NewAvailabilityRouter(slotController *controller.SlotController) *AvailabilityRouter {
	return &AvailabilityRouter{SlotController: slotController}
}

// Setup registers slot routes
func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public listing for counterparts browsing availability
	v1.GET("/slots", r.SlotController.ListPublic)

	privateRoutes := v1.Group("/private")
	slotRoutes := privateRoutes.Group("/slots", mw.AuthMiddleware())

	slotRoutes.GET("", r.SlotController.ListMine)
	slotRoutes.POST("", r.SlotController.CreateSlots, mw.RequireRole(constants.RoleOwner))
	slotRoutes.PUT("/:id", r.SlotController.UpdateSlot, mw.RequireRole(constants.RoleOwner))
	slotRoutes.DELETE("/:id", r.SlotController.DeleteSlot, mw.RequireRole(constants.RoleOwner))
}
