// Package session tracks live player connections and applies moderation
// effects (disconnect, warp, broadcast) to them.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/moderation/internal/model"
)

// ErrSessionClosed is returned when an effect targets a session that has
// disconnected or was replaced by a newer connection.
var ErrSessionClosed = errors.New("session closed")

// Conn is the transport side of a session. Implementations should not block
// for long: calls are made while the session lock is held.
type Conn interface {
	// Send delivers a server message to the client.
	Send(message string) error
	// Warp tells the client its position changed. force drops pending movement.
	Warp(loc model.Location, force bool) error
	// Close terminates the connection, reporting reason to the client.
	Close(reason string) error
}

// Session is one live connection of a player.
type Session struct {
	id        uuid.UUID
	playerID  uuid.UUID
	accountID *uuid.UUID
	address   string
	conn      Conn

	// mu guards loc and closed; effects run under it so a concurrent
	// disconnect cannot slip between the check and the effect.
	mu     sync.Mutex
	loc    model.Location
	closed bool
}

// New creates a session for playerID. accountID is nil for guests.
func New(playerID uuid.UUID, accountID *uuid.UUID, address string, loc model.Location, conn Conn) *Session {
	if accountID != nil {
		id := *accountID
		accountID = &id
	}
	return &Session{
		id:        uuid.New(),
		playerID:  playerID,
		accountID: accountID,
		address:   address,
		conn:      conn,
		loc:       loc,
	}
}

// ID returns the connection id.
func (s *Session) ID() uuid.UUID { return s.id }

// PlayerID returns the id of the player bound to this session.
func (s *Session) PlayerID() uuid.UUID { return s.playerID }

// Address returns the remote network address.
func (s *Session) Address() string { return s.address }

// Location returns the current position.
func (s *Session) Location() model.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loc
}

// Move records a position change initiated by the player.
func (s *Session) Move(loc model.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.loc = loc
	return nil
}

// Closed reports whether the session has ended.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := model.Session{
		ID:             s.id,
		PlayerID:       s.playerID,
		NetworkAddress: s.address,
		Location:       s.loc,
	}
	if s.accountID != nil {
		id := *s.accountID
		snap.AccountID = &id
	}
	return snap
}

// close marks the session closed and closes the connection.
// The connection error is returned but the session stays closed either way.
func (s *Session) close(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	if err := s.conn.Close(reason); err != nil {
		return fmt.Errorf("closing connection: %w", err)
	}
	return nil
}

// warp moves the session. Without force only the map changes and the live
// tile position is kept.
func (s *Session) warp(loc model.Location, force bool) (model.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.Location{}, ErrSessionClosed
	}
	if !force {
		loc = loc.WithCoordinates(s.loc.X, s.loc.Y)
	}
	if err := s.conn.Warp(loc, force); err != nil {
		return model.Location{}, fmt.Errorf("sending warp: %w", err)
	}
	s.loc = loc
	return loc, nil
}

func (s *Session) send(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return s.conn.Send(message)
}
