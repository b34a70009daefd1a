package router

import (
	"rehearsal-room-api/core/middleware"
	"rehearsal-room-api/modules/reservation/controller"

	"github.com/labstack/echo/v4"
)

type ReservationRouter struct {
	Controller *controller.ReservationController
}

func NewReservationRouter(ctrl *controller.ReservationController) *ReservationRouter {
	return &ReservationRouter{Controller: ctrl}
}

func (r *ReservationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	res := v1.Group("/reservations")
	res.GET("", r.Controller.ListUpcoming)
	// Only the mutating routes are rate limited.
	res.POST("", r.Controller.Create, mw.RateLimit())
	res.POST("/:id/cancel", r.Controller.Cancel, mw.RateLimit())
}
