package schedule

import (
	"rehearsal-room-api/modules/reservation/repository"
	"rehearsal-room-api/modules/schedule/controller"
	"rehearsal-room-api/modules/schedule/router"
	"rehearsal-room-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, store repository.LedgerStore) {
	svc := service.NewScheduleService(store)
	ctrl := controller.NewScheduleController(svc)
	router.NewScheduleRouter(ctrl).Setup(e)
}
