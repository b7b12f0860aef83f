package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// ParseRunID identifies one parse invocation over one workbook
type ParseRunID ID

func (id ParseRunID) String() string { return ID(id).String() }

// ParseParseRunID parses a string into ParseRunID
func ParseParseRunID(s string) (ParseRunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("parse run ID cannot be empty")
	}
	return ParseRunID(s), nil
}
