package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/udisondev/moderation/internal/model"
)

// PlayerDirectory looks up persistent player records.
// Both methods return nil, nil when no record matches.
type PlayerDirectory interface {
	// FindPlayerByName finds a player by display name (case-insensitive).
	FindPlayerByName(ctx context.Context, name string) (*model.Player, error)
	// FindPlayerByID finds a player by record id.
	FindPlayerByID(ctx context.Context, id uuid.UUID) (*model.Player, error)
}

// SessionLookup finds the live session of a player.
type SessionLookup interface {
	// Lookup returns a snapshot of the player's session, or false when offline.
	Lookup(playerID uuid.UUID) (*model.Session, bool)
}

// Sessions applies effects to live sessions.
// Effects address a session by its connection id; when that connection is
// gone or was replaced they fail with session.ErrSessionClosed instead of
// silently doing nothing.
type Sessions interface {
	SessionLookup
	// Disconnect closes the session, recording reason as the cause.
	Disconnect(ctx context.Context, sessionID uuid.UUID, reason string) error
	// Warp moves the session to mapID and returns where it ended up. Without
	// forcePosition the session keeps its live tile position.
	Warp(ctx context.Context, sessionID, mapID uuid.UUID, x, y byte, forcePosition bool) (model.Location, error)
}

// Store persists ban and mute records.
// Add replaces any existing record of the same kind for the subject; each call
// is atomic per subject.
type Store interface {
	AddBan(ctx context.Context, ban model.Restriction) error
	RemoveBan(ctx context.Context, subject model.Subject) error
	AddMute(ctx context.Context, mute model.Restriction) error
	RemoveMute(ctx context.Context, subject model.Subject) error
	// ActiveBan returns the subject's ban if it is still in force, nil otherwise.
	ActiveBan(ctx context.Context, subject model.Subject) (*model.Restriction, error)
	// ActiveMute returns the subject's mute if it is still in force, nil otherwise.
	ActiveMute(ctx context.Context, subject model.Subject) (*model.Restriction, error)
}

// Broadcaster sends a message to every connected player.
// Delivery is fire-and-forget; implementations log their own failures.
type Broadcaster interface {
	Broadcast(ctx context.Context, message string)
}
