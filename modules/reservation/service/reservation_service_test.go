package service

import (
	"context"
	"testing"

	"rehearsal-room-api/core/errors"
	authservice "rehearsal-room-api/modules/auth/service"
	"rehearsal-room-api/modules/reservation/dto"
	"rehearsal-room-api/modules/reservation/entity"
	scheduleservice "rehearsal-room-api/modules/schedule/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory LedgerStore. Load returns a copy so the service
// cannot mutate stored state without going through Save.
type fakeStore struct {
	records []entity.Reservation
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeStore) Load(_ context.Context) ([]entity.Reservation, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]entity.Reservation, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeStore) Save(_ context.Context, reservations []entity.Reservation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.records = append([]entity.Reservation(nil), reservations...)
	return nil
}

func newTestService(store *fakeStore, adminPIN string) ReservationServiceInterface {
	pins := authservice.NewPINService(adminPIN)
	return NewReservationService(store, pins, scheduleservice.NewScheduleService(store))
}

// 2030-06-10 is a Monday, 2030-06-15 a Saturday; both safely in the future.
const (
	futureWeekday = "2030-06-10"
	futureSat     = "2030-06-15"
)

func reserveReq(date, slot, group, pin string) *dto.CreateReservationRequest {
	return &dto.CreateReservationRequest{Date: date, SlotLabel: slot, GroupName: group, PIN: pin}
}

func TestAttemptReserveCreatesReservation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, "")

	resp, appErr := svc.AttemptReserve(context.Background(), reserveReq(futureWeekday, "19h - 22h", "Choir", "1234"))
	require.Nil(t, appErr)

	assert.Len(t, resp.ID, 8)
	assert.Equal(t, futureWeekday, resp.Date)
	assert.Equal(t, "19h - 22h", resp.SlotLabel)
	assert.Equal(t, "Choir", resp.GroupName)

	require.Len(t, store.records, 1)
	assert.Equal(t,
		"03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4",
		store.records[0].PINDigest, "ledger stores sha256 of the PIN, not the PIN")
}

func TestAttemptReserveTrimsInput(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, "")

	resp, appErr := svc.AttemptReserve(context.Background(), reserveReq(futureWeekday, "19h - 22h", "  Choir  ", " 1234 "))
	require.Nil(t, appErr)
	assert.Equal(t, "Choir", resp.GroupName)
	assert.Equal(t,
		"03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4",
		store.records[0].PINDigest)
}

func TestAttemptReserveValidatesInput(t *testing.T) {
	svc := newTestService(&fakeStore{}, "")
	ctx := context.Background()

	cases := []struct {
		name string
		req  *dto.CreateReservationRequest
	}{
		{"empty group", reserveReq(futureWeekday, "19h - 22h", "   ", "1234")},
		{"empty pin", reserveReq(futureWeekday, "19h - 22h", "Choir", "  ")},
		{"bad date", reserveReq("10/06/2030", "19h - 22h", "Choir", "1234")},
		{"elapsed date", reserveReq("2020-01-06", "19h - 22h", "Choir", "1234")},
		{"weekend slot on a weekday", reserveReq(futureWeekday, "08h - 12h", "Choir", "1234")},
		{"unknown slot", reserveReq(futureSat, "23h - 02h", "Choir", "1234")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, appErr := svc.AttemptReserve(ctx, tc.req)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		})
	}
}

func TestAttemptReserveFirstCommitterWins(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, "")
	ctx := context.Background()

	created := 0
	taken := 0
	for _, group := range []string{"Choir", "Youth band", "Scouts", "Guitar circle"} {
		_, appErr := svc.AttemptReserve(ctx, reserveReq(futureSat, "14h - 18h", group, "1234"))
		switch {
		case appErr == nil:
			created++
		case appErr.Code == errors.ErrSlotTaken:
			taken++
		default:
			t.Fatalf("unexpected error: %v", appErr)
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, 3, taken)
	assert.Len(t, store.records, 1)
	assert.Equal(t, "Choir", store.records[0].GroupName)
}

func TestAttemptReserveDifferentSlotsSameDay(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, "")
	ctx := context.Background()

	for _, slot := range []string{"08h - 12h", "14h - 18h", "19h - 22h"} {
		_, appErr := svc.AttemptReserve(ctx, reserveReq(futureSat, slot, "Choir", "1234"))
		require.Nil(t, appErr)
	}
	assert.Len(t, store.records, 3)
}

func TestAttemptReserveSurfacesSaveFailure(t *testing.T) {
	store := &fakeStore{
		saveErr: errors.NewAppError(errors.ErrStoreTimeout, "ledger is busy, try again", nil),
	}
	svc := newTestService(store, "")

	_, appErr := svc.AttemptReserve(context.Background(), reserveReq(futureWeekday, "19h - 22h", "Choir", "1234"))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrStoreTimeout, appErr.Code)
	assert.Empty(t, store.records, "a failed save must not record the reservation")
}

func TestAttemptCancelWithHolderPin(t *testing.T) {
	pins := authservice.NewPINService("")
	store := &fakeStore{records: []entity.Reservation{
		{ID: "abcd1234", Date: futureWeekday, SlotLabel: "19h - 22h", GroupName: "Choir", PINDigest: pins.Digest("9999")},
	}}
	svc := newTestService(store, "")
	ctx := context.Background()

	appErr := svc.AttemptCancel(ctx, "abcd1234", "9999")
	require.Nil(t, appErr)
	assert.Empty(t, store.records)

	// Cancelling again finds nothing.
	appErr = svc.AttemptCancel(ctx, "abcd1234", "9999")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestAttemptCancelWithAdminPin(t *testing.T) {
	pins := authservice.NewPINService("")
	store := &fakeStore{records: []entity.Reservation{
		{ID: "abcd1234", Date: futureWeekday, SlotLabel: "19h - 22h", GroupName: "Choir", PINDigest: pins.Digest("9999")},
	}}
	svc := newTestService(store, "master-pin")

	appErr := svc.AttemptCancel(context.Background(), "abcd1234", "master-pin")
	require.Nil(t, appErr)
	assert.Empty(t, store.records)
}

func TestAttemptCancelWrongPinLeavesLedgerUnchanged(t *testing.T) {
	pins := authservice.NewPINService("")
	store := &fakeStore{records: []entity.Reservation{
		{ID: "abcd1234", Date: futureWeekday, SlotLabel: "19h - 22h", GroupName: "Choir", PINDigest: pins.Digest("9999")},
	}}
	svc := newTestService(store, "master-pin")

	appErr := svc.AttemptCancel(context.Background(), "abcd1234", "1111")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrWrongPin, appErr.Code)
	assert.Len(t, store.records, 1)
	assert.Equal(t, 0, store.saves)
}

func TestAttemptCancelEmptyPin(t *testing.T) {
	svc := newTestService(&fakeStore{}, "")

	appErr := svc.AttemptCancel(context.Background(), "abcd1234", "   ")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestAttemptCancelUnknownID(t *testing.T) {
	svc := newTestService(&fakeStore{}, "")

	appErr := svc.AttemptCancel(context.Background(), "zzzz0000", "1234")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestListUpcomingFiltersAndSorts(t *testing.T) {
	store := &fakeStore{records: []entity.Reservation{
		{ID: "a1", Date: futureSat, SlotLabel: "14h - 18h", GroupName: "Scouts"},
		{ID: "a2", Date: "2020-01-06", SlotLabel: "19h - 22h", GroupName: "Gone"},
		{ID: "a3", Date: futureWeekday, SlotLabel: "19h - 22h", GroupName: "Choir"},
		{ID: "a4", Date: futureSat, SlotLabel: "08h - 12h", GroupName: "Youth band"},
		{ID: "a5", Date: "not-a-date", SlotLabel: "19h - 22h", GroupName: "Broken row"},
	}}
	svc := newTestService(store, "")

	got, appErr := svc.ListUpcoming(context.Background())
	require.Nil(t, appErr)

	require.Len(t, got, 3)
	assert.Equal(t, "a3", got[0].ID)
	assert.Equal(t, "a4", got[1].ID)
	assert.Equal(t, "a1", got[2].ID)
}

func TestListUpcomingSurfacesLoadFailure(t *testing.T) {
	store := &fakeStore{
		loadErr: errors.NewAppError(errors.ErrStoreTimeout, "ledger is busy, try again", nil),
	}
	svc := newTestService(store, "")

	_, appErr := svc.ListUpcoming(context.Background())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrStoreTimeout, appErr.Code)
}
