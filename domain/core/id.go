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
	// SessionID identifies one browser session of the report UI.
	SessionID ID
	// RenderToken identifies one in-flight render request.
	RenderToken ID
)

func (id SessionID) String() string   { return ID(id).String() }
func (id RenderToken) String() string { return ID(id).String() }

// NewSessionID creates a random session identifier
func NewSessionID() SessionID { return SessionID(NewID()) }

// NewRenderToken creates a time-ordered render token
func NewRenderToken() RenderToken { return RenderToken(NewID()) }

// ParseSessionID validates a session identifier received from a client.
// Only canonical UUIDs are accepted.
func ParseSessionID(s string) (SessionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid session ID %q: %w", s, err)
	}
	return SessionID(u.String()), nil
}
