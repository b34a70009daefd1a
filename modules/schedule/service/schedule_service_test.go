package service

import (
	"context"
	"testing"
	"time"

	"rehearsal-room-api/modules/reservation/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	records []entity.Reservation
}

func (f *fakeStore) Load(_ context.Context) ([]entity.Reservation, error) {
	out := make([]entity.Reservation, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeStore) Save(_ context.Context, reservations []entity.Reservation) error {
	f.records = append([]entity.Reservation(nil), reservations...)
	return nil
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestSlotsForWeekdays(t *testing.T) {
	svc := NewScheduleService(&fakeStore{})

	// 2025-06-09 is a Monday.
	for i := 0; i < 5; i++ {
		date := mustDate(t, "2025-06-09").AddDate(0, 0, i)
		slots := svc.SlotsFor(date)
		assert.Equal(t, []string{"19h - 22h"}, slots, "weekday %s", date.Weekday())
	}
}

func TestSlotsForWeekend(t *testing.T) {
	svc := NewScheduleService(&fakeStore{})

	for _, day := range []string{"2025-06-14", "2025-06-15"} {
		slots := svc.SlotsFor(mustDate(t, day))
		assert.Equal(t, []string{"08h - 12h", "14h - 18h", "19h - 22h"}, slots)
	}
}

func TestSlotsForReturnsCopy(t *testing.T) {
	svc := NewScheduleService(&fakeStore{})
	date := mustDate(t, "2025-06-14")

	slots := svc.SlotsFor(date)
	slots[0] = "tampered"

	assert.Equal(t, "08h - 12h", svc.SlotsFor(date)[0])
}

func TestDayScheduleMarksTakenSlots(t *testing.T) {
	store := &fakeStore{records: []entity.Reservation{
		{ID: "aaaa1111", Date: "2025-06-14", SlotLabel: "14h - 18h", GroupName: "Choir"},
	}}
	svc := NewScheduleService(store)

	resp, appErr := svc.DaySchedule(context.Background(), "2025-06-14")
	require.Nil(t, appErr)

	require.Len(t, resp.Slots, 3)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.True(t, resp.Slots[2].Available)
}

func TestDayScheduleRejectsBadDate(t *testing.T) {
	svc := NewScheduleService(&fakeStore{})

	_, appErr := svc.DaySchedule(context.Background(), "14/06/2025")
	require.NotNil(t, appErr)
	assert.Equal(t, "INVALID_INPUT", string(appErr.Code))
}
