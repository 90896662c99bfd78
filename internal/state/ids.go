package state

import "github.com/google/uuid"

// newID returns a fresh stroke identifier.
func newID() string {
	return uuid.NewString()
}
