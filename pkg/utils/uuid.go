package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// ShortID returns the first 8 hex characters of id in upper case, used as
// a human-readable receipt number.
func ShortID(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}
