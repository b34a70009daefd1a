package dto

import "rehearsal-room-api/modules/reservation/entity"

// CreateReservationRequest is the reserve intent.
type CreateReservationRequest struct {
	Date      string `json:"date"`
	SlotLabel string `json:"slot_label"`
	GroupName string `json:"group_name"`
	PIN       string `json:"pin"`
}

// CancelReservationRequest carries the cancellation secret (the holder's
// PIN or the administrator PIN).
type CancelReservationRequest struct {
	PIN string `json:"pin"`
}

// ReservationResponse is a reservation as exposed over HTTP. The PIN digest
// stays internal.
type ReservationResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	SlotLabel string `json:"slot_label"`
	GroupName string `json:"group_name"`
}

func ToReservationResponse(r *entity.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:        r.ID,
		Date:      r.Date,
		SlotLabel: r.SlotLabel,
		GroupName: r.GroupName,
	}
}

func ToReservationResponses(reservations []entity.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, *ToReservationResponse(&reservations[i]))
	}
	return out
}
