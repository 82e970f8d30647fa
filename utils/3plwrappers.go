package utils

import (
	"github.com/google/uuid"
)

// GetUUID returns a fresh random identifier for a new document.
func GetUUID() string {
	return uuid.New().String()
}
