package admin

import (
	"context"
	"fmt"

	"github.com/udisondev/moderation/internal/model"
)

// Target is a resolved player: the persistent record plus the live session
// when the player is online.
type Target struct {
	ID      Identifier // as the caller supplied it
	Player  model.Player
	Session *model.Session // nil when offline
}

// requested returns the identifier the caller used, falling back to the
// player name for targets built without one.
func (t Target) requested() Identifier {
	if t.ID.Validate() != nil {
		return ByName(t.Player.Name)
	}
	return t.ID
}

// Online reports whether the target has a live session.
func (t Target) Online() bool {
	return t.Session != nil
}

// Resolver turns an Identifier into a Target.
type Resolver struct {
	players  PlayerDirectory
	sessions SessionLookup
}

// NewResolver creates a resolver over the given directory and session lookup.
func NewResolver(players PlayerDirectory, sessions SessionLookup) *Resolver {
	return &Resolver{players: players, sessions: sessions}
}

// Resolve finds the player named by id and attaches its session if online.
// Malformed identifiers fail with ErrInvalidIdentifier before any lookup;
// unknown players fail with ErrPlayerNotFound.
func (r *Resolver) Resolve(ctx context.Context, id Identifier) (Target, error) {
	if err := id.Validate(); err != nil {
		return Target{}, err
	}

	var (
		player *model.Player
		err    error
	)
	if id.IsID() {
		player, err = r.players.FindPlayerByID(ctx, id.ID())
	} else {
		player, err = r.players.FindPlayerByName(ctx, id.Name())
	}
	if err != nil {
		return Target{}, fmt.Errorf("looking up player by %s %q: %w", id.kind(), id, err)
	}
	if player == nil {
		return Target{}, fmt.Errorf("%w: %s %q", ErrPlayerNotFound, id.kind(), id)
	}

	target := Target{ID: id, Player: *player}
	if s, ok := r.sessions.Lookup(player.ID); ok {
		target.Session = s
	}
	return target, nil
}
