package router

import (
	"github.com/Akius1/cv-review-sub000/core/middleware"
	"github.com/Akius1/cv-review-sub000/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

// BookingRouter handles booking routes
type BookingRouter struct {
	BookingController *controller.BookingController
}

func NewBookingRouter(bookingController *controller.BookingController) *BookingRouter {
	return &BookingRouter{BookingController: bookingController}
}

// Setup registers booking routes
func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	bookingRoutes := privateRoutes.Group("/bookings", mw.AuthMiddleware())
	bookingRoutes.POST("", r.BookingController.Book)
	bookingRoutes.GET("", r.BookingController.ListMine)
	bookingRoutes.GET("/:id", r.BookingController.GetByID)
	bookingRoutes.PUT("/:id/cancel", r.BookingController.Cancel)
	bookingRoutes.PUT("/:id/complete", r.BookingController.Complete)
}
