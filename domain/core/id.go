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

// Domain-specific ID types
type (
	// RunID identifies one sampler run and its posterior archive
	RunID ID
	// SweepID identifies one epsilon sweep over a tomography problem
	SweepID ID
)

// NewRunID creates a fresh run identifier
func NewRunID() RunID {
	return RunID(NewID())
}

// NewSweepID creates a fresh sweep identifier
func NewSweepID() SweepID {
	return SweepID(NewID())
}

func (id RunID) String() string   { return ID(id).String() }
func (id SweepID) String() string { return ID(id).String() }

// ParseRunID parses a string into a RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}
