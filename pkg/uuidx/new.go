package uuidx

import "github.com/google/uuid"

// New returns a time-ordered (version 7) UUID, so ids sort by creation time
// in logs. It panics if the random source fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
