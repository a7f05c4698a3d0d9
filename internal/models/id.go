package models

import "github.com/google/uuid"

// NewID returns a time-ordered unique identifier for a new entity.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
