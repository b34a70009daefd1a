package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// PINServiceInterface is the PIN authority: it turns cancellation secrets
// into ledger digests and checks the administrator override. There is no
// lockout or attempt counting here; abuse is throttled at the HTTP edge.
type PINServiceInterface interface {
	Digest(secret string) string
	Verify(digest string, secret string) bool
	IsAdmin(secret string) bool
}

type PINService struct {
	adminPIN string
}

// NewPINService creates the PIN authority. adminPIN may be empty, in which
// case no administrator override exists.
func NewPINService(adminPIN string) PINServiceInterface {
	return &PINService{adminPIN: adminPIN}
}

// Digest returns the hex sha256 of the secret. The scheme is fixed: ledgers
// written by other instances store exactly this digest, and the arbiter
// compares digests for equality.
func (s *PINService) Digest(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the secret hashes to the stored digest.
func (s *PINService) Verify(digest string, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(s.Digest(secret)), []byte(digest)) == 1
}

// IsAdmin reports whether the secret matches the configured administrator
// PIN. The admin PIN is compared as plaintext and is never written to the
// ledger.
func (s *PINService) IsAdmin(secret string) bool {
	if s.adminPIN == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(s.adminPIN)) == 1
}
