package model

import "github.com/google/uuid"

// Session is a point-in-time snapshot of a live connection bound to a player.
//
// ID identifies the connection, not the player: a player who reconnects gets a
// new ID, so effects addressed to a stale snapshot fail instead of landing on
// the new connection.
type Session struct {
	ID             uuid.UUID
	PlayerID       uuid.UUID
	NetworkAddress string
	Location       Location

	// AccountID is nil for guest sessions that never authenticated.
	AccountID *uuid.UUID
}

// Authenticated reports whether the session carries an account id.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccountID != nil && *s.AccountID != uuid.Nil
}
