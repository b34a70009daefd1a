package reservation

import (
	"rehearsal-room-api/core/config"
	"rehearsal-room-api/core/middleware"
	authService "rehearsal-room-api/modules/auth/service"
	"rehearsal-room-api/modules/reservation/controller"
	"rehearsal-room-api/modules/reservation/repository"
	"rehearsal-room-api/modules/reservation/router"
	"rehearsal-room-api/modules/reservation/service"
	scheduleService "rehearsal-room-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, cfg *config.Config, store repository.LedgerStore, mw *middleware.Middleware) {
	pinSvc := authService.NewPINService(cfg.Admin.PIN)
	schedSvc := scheduleService.NewScheduleService(store)

	svc := service.NewReservationService(store, pinSvc, schedSvc)

	ctrl := controller.NewReservationController(svc)
	router.NewReservationRouter(ctrl).Setup(e, mw)
}
