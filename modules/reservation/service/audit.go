package service

import (
	"context"
	"time"

	"rehearsal-room-api/core/constants"
	"rehearsal-room-api/core/logger"
	"rehearsal-room-api/modules/reservation/repository"

	"github.com/hibiken/asynq"
)

// LedgerAuditor is the periodic read-only health check over the shared
// ledger. It reports record counts, duplicate (date, slot) pairs and
// elapsed rows to the logs; it never mutates the ledger, since mutation is
// reserved for reserve/cancel commits.
type LedgerAuditor struct {
	store repository.LedgerStore
}

func NewLedgerAuditor(store repository.LedgerStore) *LedgerAuditor {
	return &LedgerAuditor{store: store}
}

// NewAuditTask builds the task enqueued by the scheduler.
func NewAuditTask() *asynq.Task {
	return asynq.NewTask(constants.TaskLedgerAudit, nil)
}

// HandleAuditTask processes one ledger:audit task.
func (a *LedgerAuditor) HandleAuditTask(ctx context.Context, _ *asynq.Task) error {
	reservations, err := a.store.Load(ctx)
	if err != nil {
		logger.Error("LedgerAuditor:HandleAuditTask:LoadFailed", "error", err)
		return err
	}

	today := time.Now().Format(constants.DateLayout)
	seen := map[string]string{}
	duplicates := 0
	elapsed := 0

	for _, r := range reservations {
		key := r.Date + "|" + r.SlotLabel
		if prev, ok := seen[key]; ok {
			duplicates++
			logger.Warn("LedgerAuditor:HandleAuditTask:DuplicateSlot",
				"date", r.Date, "slot", r.SlotLabel, "id", r.ID, "conflicts_with", prev)
		} else {
			seen[key] = r.ID
		}
		if r.Date < today {
			elapsed++
		}
	}

	logger.Info("LedgerAuditor:HandleAuditTask:Done",
		"records", len(reservations), "duplicates", duplicates, "elapsed", elapsed)
	return nil
}
