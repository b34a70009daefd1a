package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestIsHexSHA256(t *testing.T) {
	svc := NewPINService("")

	assert.Equal(t,
		"03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4",
		svc.Digest("1234"))
	assert.Len(t, svc.Digest("anything"), 64)
	assert.Equal(t, svc.Digest("9999"), svc.Digest("9999"))
}

func TestVerify(t *testing.T) {
	svc := NewPINService("")
	digest := svc.Digest("9999")

	assert.True(t, svc.Verify(digest, "9999"))
	assert.False(t, svc.Verify(digest, "9998"))
	assert.False(t, svc.Verify(digest, ""))
}

func TestIsAdmin(t *testing.T) {
	svc := NewPINService("super-secret")

	assert.True(t, svc.IsAdmin("super-secret"))
	assert.False(t, svc.IsAdmin("guess"))
	assert.False(t, svc.IsAdmin(""))
}

func TestIsAdminUnconfigured(t *testing.T) {
	svc := NewPINService("")

	// Without a configured admin PIN nothing qualifies, in particular not
	// the empty string.
	assert.False(t, svc.IsAdmin(""))
	assert.False(t, svc.IsAdmin("anything"))
}
