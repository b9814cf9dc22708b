package admin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidIdentifier is returned for an empty name or a nil id.
	ErrInvalidIdentifier = errors.New("invalid player identifier")
	// ErrPlayerNotFound is returned when no player record matches.
	ErrPlayerNotFound = errors.New("player not found")
)

// Identifier names a player either by display name or by record id.
// Exactly one of the two forms is set; use ByName or ByID to build one.
type Identifier struct {
	name string
	id   uuid.UUID
	byID bool
}

// ByName identifies a player by display name.
func ByName(name string) Identifier {
	return Identifier{name: name}
}

// ByID identifies a player by record id.
func ByID(id uuid.UUID) Identifier {
	return Identifier{id: id, byID: true}
}

// IsID reports whether the identifier is the id form.
func (i Identifier) IsID() bool { return i.byID }

// Name returns the name form (empty for ids).
func (i Identifier) Name() string { return i.name }

// ID returns the id form (uuid.Nil for names).
func (i Identifier) ID() uuid.UUID { return i.id }

// Validate checks the identifier without touching any directory.
func (i Identifier) Validate() error {
	if i.byID {
		if i.id == uuid.Nil {
			return fmt.Errorf("%w: nil id", ErrInvalidIdentifier)
		}
		return nil
	}
	if strings.TrimSpace(i.name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	}
	return nil
}

func (i Identifier) String() string {
	if i.byID {
		return i.id.String()
	}
	return i.name
}

func (i Identifier) kind() string {
	if i.byID {
		return "id"
	}
	return "name"
}
