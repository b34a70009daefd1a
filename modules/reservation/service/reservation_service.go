package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"rehearsal-room-api/core/constants"
	"rehearsal-room-api/core/errors"
	"rehearsal-room-api/core/logger"
	"rehearsal-room-api/core/utils"
	authservice "rehearsal-room-api/modules/auth/service"
	"rehearsal-room-api/modules/reservation/dto"
	"rehearsal-room-api/modules/reservation/entity"
	"rehearsal-room-api/modules/reservation/repository"
	scheduleservice "rehearsal-room-api/modules/schedule/service"
)

// ReservationService arbitrates reservation attempts against the shared
// ledger. Every attempt re-loads the ledger at the moment of commit; there
// is no cached state between operations, which is what keeps independent
// instances consistent over one file.
type ReservationService struct {
	store    repository.LedgerStore
	pins     authservice.PINServiceInterface
	schedule scheduleservice.ScheduleServiceInterface
}

type ReservationServiceInterface interface {
	AttemptReserve(ctx context.Context, req *dto.CreateReservationRequest) (*dto.ReservationResponse, *errors.AppError)
	AttemptCancel(ctx context.Context, id string, pinSecret string) *errors.AppError
	ListUpcoming(ctx context.Context) ([]dto.ReservationResponse, *errors.AppError)
}

func NewReservationService(
	store repository.LedgerStore,
	pins authservice.PINServiceInterface,
	schedule scheduleservice.ScheduleServiceInterface,
) ReservationServiceInterface {
	return &ReservationService{
		store:    store,
		pins:     pins,
		schedule: schedule,
	}
}

// AttemptReserve books a slot, first-committer-wins. The ledger is
// re-loaded fresh before the conflict check; the window between a caller
// seeing availability and committing is narrowed to the load-save gap, and
// the storage backend arbitrates whatever races remain there.
func (s *ReservationService) AttemptReserve(ctx context.Context, req *dto.CreateReservationRequest) (*dto.ReservationResponse, *errors.AppError) {
	group := strings.TrimSpace(req.GroupName)
	pin := strings.TrimSpace(req.PIN)

	// Input checks fail fast, before any ledger access.
	if group == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "group name is required", nil)
	}
	if pin == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a PIN is required", nil)
	}

	day, err := time.Parse(constants.DateLayout, req.Date)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid date, expected YYYY-MM-DD", err)
	}
	date := day.Format(constants.DateLayout)
	if date < todayString() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date has already passed", nil)
	}
	if !containsSlot(s.schedule.SlotsFor(day), req.SlotLabel) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown slot for that date", nil)
	}

	reservations, err := s.store.Load(ctx)
	if err != nil {
		return nil, errors.AsAppError(err)
	}

	for _, r := range reservations {
		if r.Date == date && r.SlotLabel == req.SlotLabel {
			logger.Info("ReservationService:AttemptReserve:SlotTaken", "date", date, "slot", req.SlotLabel)
			return nil, errors.NewAppError(errors.ErrSlotTaken, "that slot was already reserved by someone else", nil)
		}
	}

	reservation := entity.Reservation{
		ID:        utils.NewReservationID(),
		Date:      date,
		SlotLabel: req.SlotLabel,
		GroupName: group,
		PINDigest: s.pins.Digest(pin),
	}

	// A failed save means the reservation was NOT recorded; the backend's
	// error code tells the caller whether a retry is worthwhile.
	if err := s.store.Save(ctx, append(reservations, reservation)); err != nil {
		logger.Error("ReservationService:AttemptReserve:SaveFailed", "date", date, "slot", req.SlotLabel, "error", err)
		return nil, errors.AsAppError(err)
	}

	logger.Info("ReservationService:AttemptReserve:Created", "id", reservation.ID, "date", date, "slot", req.SlotLabel)
	return dto.ToReservationResponse(&reservation), nil
}

// AttemptCancel removes a reservation by id, guarded by its PIN or the
// administrator override.
func (s *ReservationService) AttemptCancel(ctx context.Context, id string, pinSecret string) *errors.AppError {
	pin := strings.TrimSpace(pinSecret)
	if pin == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "a PIN is required", nil)
	}

	reservations, err := s.store.Load(ctx)
	if err != nil {
		return errors.AsAppError(err)
	}

	idx := -1
	for i, r := range reservations {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Covers the case where another caller cancelled it first.
		return errors.NewAppError(errors.ErrNotFound, "reservation not found, it may have been cancelled already", nil)
	}

	if !s.pins.Verify(reservations[idx].PINDigest, pin) && !s.pins.IsAdmin(pin) {
		logger.Warn("ReservationService:AttemptCancel:WrongPin", "id", id)
		return errors.NewAppError(errors.ErrWrongPin, "wrong PIN for this reservation", nil)
	}

	remaining := append(reservations[:idx:idx], reservations[idx+1:]...)
	if err := s.store.Save(ctx, remaining); err != nil {
		logger.Error("ReservationService:AttemptCancel:SaveFailed", "id", id, "error", err)
		return errors.AsAppError(err)
	}

	logger.Info("ReservationService:AttemptCancel:Cancelled", "id", id)
	return nil
}

// ListUpcoming returns today's and future reservations sorted by date then
// slot label. Rows with unparseable dates are skipped, matching the
// lenient load behavior.
func (s *ReservationService) ListUpcoming(ctx context.Context) ([]dto.ReservationResponse, *errors.AppError) {
	reservations, err := s.store.Load(ctx)
	if err != nil {
		return nil, errors.AsAppError(err)
	}

	today := todayString()
	upcoming := make([]entity.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if _, err := time.Parse(constants.DateLayout, r.Date); err != nil {
			continue
		}
		if r.Date >= today {
			upcoming = append(upcoming, r)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].SlotLabel < upcoming[j].SlotLabel
	})

	return dto.ToReservationResponses(upcoming), nil
}

// todayString is the local calendar day; ISO dates compare correctly as
// strings, which avoids timezone skew between parsed UTC dates and local
// midnight.
func todayString() string {
	return time.Now().Format(constants.DateLayout)
}

func containsSlot(slots []string, label string) bool {
	for _, s := range slots {
		if s == label {
			return true
		}
	}
	return false
}
