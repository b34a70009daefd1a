package controller

import (
	"rehearsal-room-api/core/controller"
	"rehearsal-room-api/core/errors"
	"rehearsal-room-api/modules/reservation/dto"
	"rehearsal-room-api/modules/reservation/service"

	"github.com/labstack/echo/v4"
)

// ReservationController handles reservation HTTP requests
type ReservationController struct {
	controller.BaseController
	ReservationService service.ReservationServiceInterface
}

func NewReservationController(svc service.ReservationServiceInterface) *ReservationController {
	return &ReservationController{
		BaseController:     controller.NewBaseController(),
		ReservationService: svc,
	}
}

// Create handles POST /reservations
// @Summary Reserve a slot
// @Description Books a slot for a group, protected by a self-chosen PIN
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Reservation intent"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /reservations [post]
func (c *ReservationController) Create(ctx echo.Context) error {
	var req dto.CreateReservationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ReservationService.AttemptReserve(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Reservation created successfully")
}

// Cancel handles POST /reservations/:id/cancel
// @Summary Cancel a reservation
// @Description Cancels by id with the reservation's PIN or the administrator PIN
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.CancelReservationRequest true "Cancellation secret"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /reservations/{id}/cancel [post]
func (c *ReservationController) Cancel(ctx echo.Context) error {
	var req dto.CancelReservationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	appErr := c.ReservationService.AttemptCancel(ctx.Request().Context(), ctx.Param("id"), req.PIN)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Reservation cancelled successfully")
}

// ListUpcoming handles GET /reservations
// @Summary Upcoming reservations
// @Description Lists today's and future reservations
// @Tags Reservation
// @Produce json
// @Success 200 {array} dto.ReservationResponse
// @Router /reservations [get]
func (c *ReservationController) ListUpcoming(ctx echo.Context) error {
	result, appErr := c.ReservationService.ListUpcoming(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
