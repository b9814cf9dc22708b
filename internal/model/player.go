package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Player is the persistent player record.
// AccountID is uuid.Nil when the record was never bound to an account.
type Player struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Name      string
}

// NewPlayer creates a Player with validation.
func NewPlayer(id, accountID uuid.UUID, name string) (Player, error) {
	if id == uuid.Nil {
		return Player{}, fmt.Errorf("player id must not be nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, fmt.Errorf("player name must not be empty")
	}
	return Player{ID: id, AccountID: accountID, Name: name}, nil
}

// HasAccount reports whether the record is bound to an account.
func (p Player) HasAccount() bool {
	return p.AccountID != uuid.Nil
}
