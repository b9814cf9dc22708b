package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/moderation/internal/model"
)

// Registry holds all live sessions, at most one per player.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	byPlayer map[uuid.UUID]*Session // key: player id
	byID     map[uuid.UUID]*Session // key: session id
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byPlayer: make(map[uuid.UUID]*Session, 1000),
		byID:     make(map[uuid.UUID]*Session, 1000),
	}
}

// Register adds s as the player's live session.
// A previous session of the same player is closed and returned.
func (r *Registry) Register(s *Session) *Session {
	r.mu.Lock()
	prev := r.byPlayer[s.playerID]
	if prev != nil {
		delete(r.byID, prev.id)
	}
	r.byPlayer[s.playerID] = s
	r.byID[s.id] = s
	r.mu.Unlock()

	if prev != nil {
		if err := prev.close("logged in from another location"); err != nil && !errors.Is(err, ErrSessionClosed) {
			slog.Warn("closing replaced session", "player", prev.playerID, "session", prev.id, "error", err)
		}
	}
	return prev
}

// Unregister removes s and marks it closed. Called by the transport when the
// connection drops. A newer session of the same player is left in place.
func (r *Registry) Unregister(s *Session) {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	r.remove(s)
}

func (r *Registry) remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byPlayer[s.playerID] == s {
		delete(r.byPlayer, s.playerID)
	}
	delete(r.byID, s.id)
}

// Get returns the session with the given connection id, or nil.
func (r *Registry) Get(sessionID uuid.UUID) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[sessionID]
}

// Lookup returns a snapshot of the player's live session.
func (r *Registry) Lookup(playerID uuid.UUID) (*model.Session, bool) {
	r.mu.RLock()
	s := r.byPlayer[playerID]
	r.mu.RUnlock()

	if s == nil || s.Closed() {
		return nil, false
	}
	snap := s.Snapshot()
	return &snap, true
}

// Disconnect closes the session with the given id and removes it.
// Returns ErrSessionClosed if it is no longer live.
func (r *Registry) Disconnect(_ context.Context, sessionID uuid.UUID, reason string) error {
	s := r.Get(sessionID)
	if s == nil {
		return ErrSessionClosed
	}

	err := s.close(reason)
	if errors.Is(err, ErrSessionClosed) {
		return err
	}
	r.remove(s)
	if err != nil {
		// The session is closed regardless; a broken socket is not the caller's problem.
		slog.Debug("disconnect: connection close failed", "session", sessionID, "error", err)
	}

	slog.Info("session disconnected",
		"player", s.playerID,
		"session", sessionID,
		"reason", reason)
	return nil
}

// Warp moves the session with the given id to mapID. With forcePosition the
// session is placed at (x, y); otherwise it keeps its live position and x, y
// are ignored. Returns where the session ended up, or ErrSessionClosed if it
// is no longer live.
func (r *Registry) Warp(_ context.Context, sessionID, mapID uuid.UUID, x, y byte, forcePosition bool) (model.Location, error) {
	s := r.Get(sessionID)
	if s == nil {
		return model.Location{}, ErrSessionClosed
	}

	return s.warp(model.NewLocation(mapID, x, y), forcePosition)
}

// Broadcast sends message to every live session.
func (r *Registry) Broadcast(_ context.Context, message string) {
	r.SendAll(message)
}

// SendAll sends message to every live session and returns how many received it.
func (r *Registry) SendAll(message string) int {
	sent := 0
	r.ForEach(func(s *Session) bool {
		if err := s.send(message); err != nil {
			if !errors.Is(err, ErrSessionClosed) {
				slog.Warn("failed to broadcast to session", "player", s.playerID, "error", err)
			}
			return true
		}
		sent++
		return true
	})
	return sent
}

// ForEach iterates over a snapshot of the live sessions.
// If fn returns false, iteration stops. fn runs without the registry lock held.
func (r *Registry) ForEach(fn func(*Session) bool) {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.byPlayer))
	for _, s := range r.byPlayer {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	for _, s := range sessions {
		if !fn(s) {
			return
		}
	}
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byPlayer)
}
