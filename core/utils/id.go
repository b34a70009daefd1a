package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NewReservationID returns the short id stored in the ledger: the first 8
// characters of a random UUID. Existing ledgers carry ids in this shape, so
// the format is fixed.
func NewReservationID() string {
	return uuid.NewString()[:8]
}

// NewRequestID returns a short opaque id used to correlate log lines for a
// single HTTP request.
func NewRequestID() string {
	id, err := gonanoid.Generate(idAlphabet, 12)
	if err != nil {
		return uuid.NewString()
	}
	return id
}
