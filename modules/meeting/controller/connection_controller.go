package controller

import (
	"github.com/Akius1/cv-review-sub000/core/constants"
	"github.com/Akius1/cv-review-sub000/core/controller"
	"github.com/Akius1/cv-review-sub000/core/errors"
	"github.com/Akius1/cv-review-sub000/core/utils"
	"github.com/Akius1/cv-review-sub000/modules/meeting/dto"
	"github.com/Akius1/cv-review-sub000/modules/meeting/entity"
	"github.com/Akius1/cv-review-sub000/modules/meeting/repository"

	"github.com/labstack/echo/v4"
)

// ConnectionController manages an owner's calendar connections.
type ConnectionController struct {
	controller.BaseController
	Repo repository.ConnectionRepositoryInterface
}

func NewConnectionController(repo repository.ConnectionRepositoryInterface) *ConnectionController {
	return &ConnectionController{
		BaseController: controller.NewBaseController(),
		Repo:           repo,
	}
}

func (c *ConnectionController) getClaimsFromContext(ctx echo.Context) (*utils.TokenClaims, bool) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	return claims, ok
}

// ListConnections handles GET /private/calendar/connections
// @Summary List the caller's calendar connections
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /private/calendar/connections [get]
func (c *ConnectionController) ListConnections(ctx echo.Context) error {
	claims, ok := c.getClaimsFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	conns, err := c.Repo.ListByUser(ctx.Request().Context(), claims.UserID)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to list connections")
	}

	out := make([]dto.ConnectionResponse, len(conns))
	for i, conn := range conns {
		out[i] = dto.ConnectionResponse{
			Provider:       conn.Provider,
			Email:          conn.Email,
			TokenExpiresAt: conn.TokenExpiresAt,
			CreatedAt:      conn.CreatedAt,
		}
	}
	return c.SuccessResponse(ctx, out, "Success")
}

// SaveConnection handles POST /private/calendar/connections
// @Summary Store a calendar credential for the caller
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SaveConnectionRequest true "Credential"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/calendar/connections [post]
func (c *ConnectionController) SaveConnection(ctx echo.Context) error {
	claims, ok := c.getClaimsFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.SaveConnectionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Provider != entity.ProviderGoogle {
		return c.BadRequest(errors.ErrInvalidInput, "Unsupported calendar provider")
	}
	if req.AccessToken == "" {
		return c.BadRequest(errors.ErrInvalidInput, "access_token is required")
	}

	conn := &entity.CalendarConnection{
		UserID:         claims.UserID,
		Provider:       req.Provider,
		Email:          req.Email,
		AccessToken:    req.AccessToken,
		TokenExpiresAt: req.TokenExpiresAt,
	}
	if req.RefreshToken != "" {
		conn.RefreshToken = &req.RefreshToken
	}

	if err := c.Repo.Save(ctx.Request().Context(), conn); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to save connection")
	}

	return c.SuccessResponse(ctx, nil, "Calendar connected successfully")
}

// DeleteConnection handles DELETE /private/calendar/connections/:provider
// @Summary Disconnect a calendar provider
// @Tags Calendar
// @Security BearerAuth
// @Param provider path string true "Provider name"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/calendar/connections/{provider} [delete]
func (c *ConnectionController) DeleteConnection(ctx echo.Context) error {
	claims, ok := c.getClaimsFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	provider := ctx.Param("provider")
	if err := c.Repo.Delete(ctx.Request().Context(), claims.UserID, provider); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to disconnect calendar")
	}

	return c.SuccessResponse(ctx, nil, "Calendar disconnected")
}
