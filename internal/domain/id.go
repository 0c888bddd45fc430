package domain

import "github.com/google/uuid"

// generateID creates a new unique task identifier.
func generateID() string {
	return uuid.New().String()
}

// ShortID returns the leading segment of an id for compact display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
