package controller

import (
	"github.com/Akius1/cv-review-sub000/core/constants"
	"github.com/Akius1/cv-review-sub000/core/controller"
	"github.com/Akius1/cv-review-sub000/core/errors"
	"github.com/Akius1/cv-review-sub000/core/utils"
	"github.com/Akius1/cv-review-sub000/modules/booking/dto"
	"github.com/Akius1/cv-review-sub000/modules/booking/entity"
	"github.com/Akius1/cv-review-sub000/modules/booking/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BookingController handles booking HTTP requests
type BookingController struct {
	controller.BaseController
	BookingService service.BookingServiceInterface
}

func NewBookingController(svc service.BookingServiceInterface) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		BookingService: svc,
	}
}

func (c *BookingController) getClaimsFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}
	return claims, nil
}

// Book handles POST /private/bookings
// @Summary Book an availability slot
// @Description Reserves a spot on a slot and provisions a meeting link
// @Tags Bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookRequest true "Booking details"
// @Success 200 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/bookings [post]
func (c *BookingController) Book(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.BookRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	booking, appErr := c.BookingService.Book(ctx.Request().Context(), claims.UserID, claims.Email, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, booking, "Booking created successfully")
}

// GetByID handles GET /private/bookings/:id
// @Summary Get one of my bookings
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/bookings/{id} [get]
func (c *BookingController) GetByID(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	booking, appErr := c.BookingService.GetByID(ctx.Request().Context(), bookingID, claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, booking, "Success")
}

// ListMine handles GET /private/bookings
// @Summary List my bookings
// @Description Owners see bookings against their slots, counterparts see bookings they made
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Param status query string false "scheduled|completed|cancelled|rescheduled"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/bookings [get]
func (c *BookingController) ListMine(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var query dto.ListBookingsQuery
	if err := ctx.Bind(&query); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}

	var (
		bookings []entity.Booking
		appErr   *errors.AppError
	)
	if claims.Role == constants.RoleOwner {
		bookings, appErr = c.BookingService.ListForOwner(ctx.Request().Context(), claims.UserID, query)
	} else {
		bookings, appErr = c.BookingService.ListForCounterpart(ctx.Request().Context(), claims.UserID, query)
	}
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, bookings, "Success")
}

// Cancel handles PUT /private/bookings/:id/cancel
// @Summary Cancel a booking
// @Description Either party may cancel; the booking row is kept for history
// @Tags Bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelRequest false "Cancellation reason"
// @Success 200 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/bookings/{id}/cancel [put]
func (c *BookingController) Cancel(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	var req dto.CancelRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	booking, appErr := c.BookingService.Cancel(ctx.Request().Context(), bookingID, claims.UserID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, booking, "Booking cancelled successfully")
}

// Complete handles PUT /private/bookings/:id/complete
// @Summary Mark a booking as completed
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/bookings/{id}/complete [put]
func (c *BookingController) Complete(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	booking, appErr := c.BookingService.Complete(ctx.Request().Context(), bookingID, claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, booking, "Booking completed successfully")
}
