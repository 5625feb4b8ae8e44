package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewTrackingToken mints a random one-time tracking token. Only the hash is
// ever persisted; the raw value is handed to the payer once.
func NewTrackingToken() string {
	return uuid.NewString()
}

// HashToken returns the hex-encoded SHA-256 of a tracking token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
