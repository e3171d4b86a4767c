package controller

import (
	"github.com/Akius1/cv-review-sub000/core/constants"
	"github.com/Akius1/cv-review-sub000/core/controller"
	"github.com/Akius1/cv-review-sub000/core/errors"
	"github.com/Akius1/cv-review-sub000/core/utils"
	"github.com/Akius1/cv-review-sub000/modules/availability/dto"
	"github.com/Akius1/cv-review-sub000/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SlotController handles availability slot HTTP requests
type SlotController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewSlotController(svc service.AvailabilityServiceInterface) *SlotController {
	return &SlotController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

func (c *SlotController) getClaimsFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
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

// ListPublic handles GET /slots
// @Summary List bookable slots
// @Description Lists slots across all owners with derived status, filtered by period or date range
// @Tags Availability
// @Produce json
// @Param owner_id query string false "Scope to one owner"
// @Param period query string false "day|week|month|all"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} controller.SuccessResponse
// @Router /slots [get]
func (c *SlotController) ListPublic(ctx echo.Context) error {
	var query dto.ListSlotsQuery
	if err := ctx.Bind(&query); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}

	slots, meta, appErr := c.AvailabilityService.ListSlots(ctx.Request().Context(), query)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.ListResponse(ctx, slots, meta, "Success")
}

// ListMine handles GET /private/slots
// @Summary List the authenticated owner's slots
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /private/slots [get]
func (c *SlotController) ListMine(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var query dto.ListSlotsQuery
	if err := ctx.Bind(&query); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}
	query.OwnerID = claims.UserID.String()

	slots, meta, appErr := c.AvailabilityService.ListSlots(ctx.Request().Context(), query)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.ListResponse(ctx, slots, meta, "Success")
}

// CreateSlots handles POST /private/slots
// @Summary Create availability slots
// @Description Creates a batch of slots; any invalid slot aborts the whole batch
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSlotsRequest true "Slots to create"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/slots [post]
func (c *SlotController) CreateSlots(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	slots, appErr := c.AvailabilityService.CreateSlots(ctx.Request().Context(), claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, slots, "Slots created successfully")
}

// UpdateSlot handles PUT /private/slots/:id
// @Summary Update a slot
// @Description Rejected with Conflict while the slot has scheduled bookings
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param request body dto.UpdateSlotRequest true "Fields to change"
// @Success 200 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/slots/{id} [put]
func (c *SlotController) UpdateSlot(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	slotID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot ID")
	}

	var req dto.UpdateSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	slot, appErr := c.AvailabilityService.UpdateSlot(ctx.Request().Context(), slotID, claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, slot, "Slot updated successfully")
}

// DeleteSlot handles DELETE /private/slots/:id
// @Summary Delete a slot
// @Description Rejected with Conflict while the slot has scheduled bookings
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/slots/{id} [delete]
func (c *SlotController) DeleteSlot(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	slotID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot ID")
	}

	if appErr := c.AvailabilityService.DeleteSlot(ctx.Request().Context(), slotID, claims.UserID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Slot deleted successfully")
}
