package session

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
)

// IDGenerator produces a new unique session identifier on each call.
// Implementations must be safe for concurrent use.
type IDGenerator func() string

// UUIDGenerator returns identifiers in UUID v4 form. It is the generator
// repositories fall back to when none is configured.
func UUIDGenerator() string {
	return uuid.New().String()
}

// SecureIDGenerator returns 256-bit random identifiers in URL-safe base64
// form, for deployments that want more entropy than a UUID carries.
func SecureIDGenerator() string {
	buffer := make([]byte, 32)
	if _, err := rand.Read(buffer); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer)
}
