package store

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for fresh entities.
type IDGenerator interface {
	NewID() string
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// UUIDGenerator generates random (version 4) UUIDs.
//
// Format: "550e8400-e29b-41d4-a716-446655440000" (36 characters)
//
// Thread-safety: UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct{}

// NewID returns a new UUID as a hyphenated string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}
