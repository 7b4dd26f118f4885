package app

import "github.com/google/uuid"

// NewPlayerID returns a fresh random player identifier.
func NewPlayerID() string { return uuid.NewString() }

// ValidPlayerID reports whether id looks like one NewPlayerID produced.
func ValidPlayerID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
