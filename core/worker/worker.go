package worker

import (
	"rehearsal-room-api/core/config"
	"rehearsal-room-api/core/constants"
	"rehearsal-room-api/core/logger"
	"rehearsal-room-api/modules/reservation/repository"
	"rehearsal-room-api/modules/reservation/service"

	"github.com/hibiken/asynq"
)

// Run starts the maintenance worker and its scheduler. It blocks until the
// worker stops, so callers run it in a goroutine next to the HTTP server.
// Requires redis; the server only calls this when redis is configured.
func Run(cfg *config.Config, store repository.LedgerStore) error {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register(
		constants.DefaultAuditSchedule,
		service.NewAuditTask(),
		asynq.Queue(constants.DefaultWorkerQueueName),
	); err != nil {
		return err
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("Worker:Scheduler:Stopped", "error", err)
		}
	}()

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{constants.DefaultWorkerQueueName: 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskLedgerAudit, service.NewLedgerAuditor(store).HandleAuditTask)

	logger.Info("Worker:Run:Started", "schedule", constants.DefaultAuditSchedule)
	return srv.Run(mux)
}
