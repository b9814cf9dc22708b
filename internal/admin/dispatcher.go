package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/moderation/internal/model"
	"github.com/udisondev/moderation/internal/session"
)

// Dispatcher applies admin actions to resolved targets.
//
// Every precondition is checked before the first mutation, so a failed action
// leaves both the store and the session untouched. A successful action that
// changed state produces exactly one broadcast; failures produce none.
//
// Dispatcher holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	store    Store
	sessions Sessions
	notifier Broadcaster
	messages Messages
	now      func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMessages overrides the result and broadcast templates.
func WithMessages(m Messages) DispatcherOption {
	return func(d *Dispatcher) {
		d.messages = m.WithDefaults()
	}
}

// WithClock overrides the time source used for restriction expiry.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// NewDispatcher creates a dispatcher over the given collaborators.
func NewDispatcher(store Store, sessions Sessions, notifier Broadcaster, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		store:    store,
		sessions: sessions,
		notifier: notifier,
		messages: DefaultMessages(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Apply performs action on target.
// The returned error is reserved for collaborator failures (e.g. the store is
// unreachable); every domain result is reported through Outcome.
func (d *Dispatcher) Apply(ctx context.Context, target Target, action Action, params Parameters) (Outcome, error) {
	params = params.Normalize()

	if action.RequiresSession() && !target.Online() {
		return PlayerOffline(d.messages.Offline), nil
	}

	switch action {
	case ActionBan:
		return d.ban(ctx, target, params)
	case ActionUnBan:
		return d.unban(ctx, target)
	case ActionMute:
		return d.mute(ctx, target, params)
	case ActionUnMute:
		return d.unmute(ctx, target)
	case ActionWarpTo:
		s := target.Session
		return d.warp(ctx, target, d.warpMap(s, params), s.Location.X, s.Location.Y, false)
	case ActionWarpToLoc:
		return d.warp(ctx, target, d.warpMap(target.Session, params), params.X, params.Y, true)
	case ActionKick:
		return d.disconnect(ctx, target, params, d.messages.Kicked, d.messages.Kicked)
	case ActionKill:
		return d.disconnect(ctx, target, params, d.messages.Killed, d.messages.KillResult)
	case ActionWarpMeTo, ActionWarpToMe:
		// Both need the moderator's own position, which an API caller does not have.
		return Unsupported(action), nil
	case ActionSetSprite, ActionSetFace, ActionSetAccess:
		return NotImplemented(action), nil
	default:
		return InvalidArgument(fmt.Sprintf("unknown admin action %s", action)), nil
	}
}

func (d *Dispatcher) ban(ctx context.Context, target Target, params Parameters) (Outcome, error) {
	subject := SubjectFor(model.RestrictionBan, target)
	if subject.IsZero() {
		return noAccount(target, "ban"), nil
	}

	ban := model.NewRestriction(model.RestrictionBan, subject, d.now(), params.Duration,
		params.Reason, params.Moderator, targetIP(target, params))
	if err := d.store.AddBan(ctx, ban); err != nil {
		return Outcome{}, fmt.Errorf("adding ban for %s: %w", subject, err)
	}

	if s := target.Session; s != nil {
		err := d.sessions.Disconnect(ctx, s.ID, params.Reason)
		switch {
		case errors.Is(err, session.ErrSessionClosed):
			// Already gone.
			slog.Warn("banned player disconnected before kick",
				"player", target.Player.Name,
				"session", s.ID)
		case err != nil:
			return Outcome{}, fmt.Errorf("disconnecting banned player %s: %w", target.Player.Name, err)
		}
	}

	return d.succeed(ctx, fmt.Sprintf(d.messages.Banned, target.Player.Name)), nil
}

func (d *Dispatcher) unban(ctx context.Context, target Target) (Outcome, error) {
	subject := SubjectFor(model.RestrictionBan, target)
	if subject.IsZero() {
		return noAccount(target, "unban"), nil
	}

	if err := d.store.RemoveBan(ctx, subject); err != nil {
		return Outcome{}, fmt.Errorf("removing ban for %s: %w", subject, err)
	}
	return d.succeed(ctx, fmt.Sprintf(d.messages.Unbanned, target.Player.Name)), nil
}

func (d *Dispatcher) mute(ctx context.Context, target Target, params Parameters) (Outcome, error) {
	subject := SubjectFor(model.RestrictionMute, target)
	mute := model.NewRestriction(model.RestrictionMute, subject, d.now(), params.Duration,
		params.Reason, params.Moderator, targetIP(target, params))
	if err := d.store.AddMute(ctx, mute); err != nil {
		return Outcome{}, fmt.Errorf("adding mute for %s: %w", subject, err)
	}
	return d.succeed(ctx, fmt.Sprintf(d.messages.Muted, target.Player.Name)), nil
}

func (d *Dispatcher) unmute(ctx context.Context, target Target) (Outcome, error) {
	subject := SubjectFor(model.RestrictionMute, target)
	if err := d.store.RemoveMute(ctx, subject); err != nil {
		return Outcome{}, fmt.Errorf("removing mute for %s: %w", subject, err)
	}
	return d.succeed(ctx, fmt.Sprintf(d.messages.Unmuted, target.Player.Name)), nil
}

func (d *Dispatcher) warp(ctx context.Context, target Target, mapID uuid.UUID, x, y byte, force bool) (Outcome, error) {
	loc, err := d.sessions.Warp(ctx, target.Session.ID, mapID, x, y, force)
	if errors.Is(err, session.ErrSessionClosed) {
		return PlayerOffline(d.messages.Offline), nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("warping %s: %w", target.Player.Name, err)
	}
	return d.succeed(ctx, d.messages.warped(target.Player.Name, loc)), nil
}

// disconnect backs both Kick and Kill: the session effect is the same, only
// the wording differs.
func (d *Dispatcher) disconnect(ctx context.Context, target Target, params Parameters, announce, result string) (Outcome, error) {
	err := d.sessions.Disconnect(ctx, target.Session.ID, params.Reason)
	if errors.Is(err, session.ErrSessionClosed) {
		return PlayerOffline(d.messages.Offline), nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("disconnecting %s: %w", target.Player.Name, err)
	}

	d.notifier.Broadcast(ctx, fmt.Sprintf(announce, target.Player.Name))
	return Success(fmt.Sprintf(result, target.Player.Name)), nil
}

func (d *Dispatcher) succeed(ctx context.Context, message string) Outcome {
	d.notifier.Broadcast(ctx, message)
	return Success(message)
}

func (d *Dispatcher) warpMap(s *model.Session, params Parameters) uuid.UUID {
	if params.MapID != uuid.Nil {
		return params.MapID
	}
	return s.Location.MapID
}

// SubjectFor picks the identity a restriction of the given kind is keyed against:
//
//  1. the account the live session authenticated with;
//  2. for mutes only, the player record id when no authenticated session exists;
//  3. the account bound to the player record.
//
// Bans are always account-keyed; the result may be zero when the record has
// no account.
func SubjectFor(kind model.RestrictionKind, target Target) model.Subject {
	if target.Session.Authenticated() {
		return model.AccountSubject(*target.Session.AccountID)
	}
	if kind == model.RestrictionMute {
		return model.PlayerSubject(target.Player.ID)
	}
	return model.AccountSubject(target.Player.AccountID)
}

func noAccount(target Target, verb string) Outcome {
	id := target.requested()
	return InvalidArgument(fmt.Sprintf("Player %s '%s' has no account to %s.", id.kind(), id, verb))
}

// targetIP is the address an IP-scoped restriction covers. Offline targets
// have no address, so IP scoping quietly does nothing for them.
func targetIP(target Target, params Parameters) string {
	if !params.IP || target.Session == nil {
		return ""
	}
	return target.Session.NetworkAddress
}
