package repository

import (
	"context"
	"os"
	"time"

	"rehearsal-room-api/core/errors"
	"rehearsal-room-api/core/logger"
	"rehearsal-room-api/modules/reservation/entity"

	"github.com/gofrs/flock"
)

// FileLedger keeps the ledger in one local CSV file. Every Load and Save
// takes an exclusive advisory lock on that file for the duration of the
// operation, so all cooperating processes on the machine are serialized.
// Lock acquisition is bounded; exceeding the bound fails the operation
// instead of hanging.
type FileLedger struct {
	path        string
	lockTimeout time.Duration
	retryDelay  time.Duration
}

func NewFileLedger(path string, lockTimeout time.Duration) *FileLedger {
	return &FileLedger{
		path:        path,
		lockTimeout: lockTimeout,
		retryDelay:  50 * time.Millisecond,
	}
}

func (l *FileLedger) Load(ctx context.Context) ([]entity.Reservation, error) {
	lock := flock.New(l.path)
	if err := l.acquire(ctx, lock); err != nil {
		return nil, err
	}
	defer lock.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to read ledger file", err)
	}

	// A missing or empty backing file is not an error: initialize it with
	// the header row and report an empty ledger.
	if len(data) == 0 {
		header, err := encodeLedger(nil)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to encode ledger header", err)
		}
		if err := os.WriteFile(l.path, header, 0o644); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to initialize ledger file", err)
		}
		logger.Info("FileLedger:Load:Initialized", "path", l.path)
		return nil, nil
	}

	return decodeLedger(data), nil
}

func (l *FileLedger) Save(ctx context.Context, reservations []entity.Reservation) error {
	data, err := encodeLedger(reservations)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to encode ledger", err)
	}

	lock := flock.New(l.path)
	if err := l.acquire(ctx, lock); err != nil {
		return err
	}
	defer lock.Unlock()

	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to write ledger file", err)
	}
	return nil
}

func (l *FileLedger) acquire(ctx context.Context, lock *flock.Flock) error {
	lockCtx, cancel := context.WithTimeout(ctx, l.lockTimeout)
	defer cancel()

	ok, err := lock.TryLockContext(lockCtx, l.retryDelay)
	if err != nil || !ok {
		logger.Warn("FileLedger:Acquire:Timeout", "path", l.path, "timeout", l.lockTimeout, "error", err)
		return errors.NewAppError(errors.ErrStoreTimeout, "ledger is busy, try again", err)
	}
	return nil
}
