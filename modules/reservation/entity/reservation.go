package entity

// Reservation is one booked slot. The id is assigned at creation, never
// reused, and is the sole key for cancellation. PINDigest holds the hex
// sha256 of the holder's secret; the plaintext secret is never stored.
type Reservation struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	SlotLabel string `json:"slot_label"`
	GroupName string `json:"group_name"`
	PINDigest string `json:"-"`
}
