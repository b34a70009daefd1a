package controller

import (
	"rehearsal-room-api/core/controller"
	"rehearsal-room-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// ScheduleController handles slot availability HTTP requests
type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
}

func NewScheduleController(svc service.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
	}
}

// DaySchedule handles GET /schedule/:date/slots
// @Summary Slots for a date
// @Description Lists the date's bookable slots with current availability
// @Tags Schedule
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DayScheduleResponse
// @Failure 400 {object} errors.AppError
// @Router /schedule/{date}/slots [get]
func (c *ScheduleController) DaySchedule(ctx echo.Context) error {
	result, appErr := c.ScheduleService.DaySchedule(ctx.Request().Context(), ctx.Param("date"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
