package playground

import "github.com/google/uuid"

// NewID generates an identifier for a project or node
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether id is a well-formed resource identifier
func IsValidID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
