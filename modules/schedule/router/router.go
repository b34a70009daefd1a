package router

import (
	"rehearsal-room-api/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

type ScheduleRouter struct {
	Controller *controller.ScheduleController
}

func NewScheduleRouter(ctrl *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{Controller: ctrl}
}

func (r *ScheduleRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.GET("/schedule/:date/slots", r.Controller.DaySchedule)
}
