package service

import (
	"context"
	"time"

	"rehearsal-room-api/core/constants"
	"rehearsal-room-api/core/errors"
	"rehearsal-room-api/modules/reservation/repository"
	"rehearsal-room-api/modules/schedule/dto"
)

// SlotPolicy maps a weekday class to its bookable slot labels.
type SlotPolicy struct {
	Weekday []string
	Weekend []string
}

// DefaultSlotPolicy returns the room's fixed schedule: one evening slot on
// weekdays, three slots on Saturday and Sunday. The labels are stored in
// the ledger, so they must not change.
func DefaultSlotPolicy() SlotPolicy {
	return SlotPolicy{
		Weekday: []string{"19h - 22h"},
		Weekend: []string{"08h - 12h", "14h - 18h", "19h - 22h"},
	}
}

type ScheduleServiceInterface interface {
	SlotsFor(date time.Time) []string
	DaySchedule(ctx context.Context, date string) (*dto.DayScheduleResponse, *errors.AppError)
}

type ScheduleService struct {
	policy SlotPolicy
	store  repository.LedgerStore
}

func NewScheduleService(store repository.LedgerStore) ScheduleServiceInterface {
	return &ScheduleService{
		policy: DefaultSlotPolicy(),
		store:  store,
	}
}

// SlotsFor returns the ordered slot labels bookable on the given date.
// Pure policy lookup, no I/O.
func (s *ScheduleService) SlotsFor(date time.Time) []string {
	var slots []string
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		slots = s.policy.Weekend
	default:
		slots = s.policy.Weekday
	}
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}

// DaySchedule returns the date's slots with availability from a fresh
// ledger read. Advisory only: the arbiter re-checks at commit time, so a
// slot shown available here can still be lost to a faster caller.
func (s *ScheduleService) DaySchedule(ctx context.Context, date string) (*dto.DayScheduleResponse, *errors.AppError) {
	day, err := time.Parse(constants.DateLayout, date)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid date, expected YYYY-MM-DD", err)
	}

	reservations, err := s.store.Load(ctx)
	if err != nil {
		return nil, errors.AsAppError(err)
	}

	taken := map[string]bool{}
	normalized := day.Format(constants.DateLayout)
	for _, r := range reservations {
		if r.Date == normalized {
			taken[r.SlotLabel] = true
		}
	}

	resp := &dto.DayScheduleResponse{Date: normalized}
	for _, label := range s.SlotsFor(day) {
		resp.Slots = append(resp.Slots, dto.SlotStatus{
			Label:     label,
			Available: !taken[label],
		})
	}
	return resp, nil
}
