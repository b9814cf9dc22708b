package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/moderation/internal/model"
)

// Service is the entry point used by transports: it resolves the target and
// hands it to the Dispatcher.
type Service struct {
	resolver   *Resolver
	dispatcher *Dispatcher
	store      Store
}

// NewService wires a resolver and dispatcher sharing the same collaborators.
func NewService(players PlayerDirectory, store Store, sessions Sessions, notifier Broadcaster, opts ...DispatcherOption) *Service {
	return &Service{
		resolver:   NewResolver(players, sessions),
		dispatcher: NewDispatcher(store, sessions, notifier, opts...),
		store:      store,
	}
}

// Apply resolves id and applies action to it.
func (s *Service) Apply(ctx context.Context, id Identifier, action Action, params Parameters) (Outcome, error) {
	target, out, err := s.resolve(ctx, id)
	if err != nil || !out.OK() {
		return out, err
	}

	out, err = s.dispatcher.Apply(ctx, target, action, params)
	if err != nil {
		slog.Error("admin action failed",
			"action", action,
			"player", target.Player.Name,
			"error", err)
		return out, err
	}

	slog.Info("admin action",
		"action", action,
		"player", target.Player.Name,
		"online", target.Online(),
		"moderator", params.Normalize().Moderator,
		"status", out.Status)
	return out, nil
}

// PlayerStatus is a resolved player with its active restrictions.
type PlayerStatus struct {
	Target Target
	Ban    *model.Restriction
	Mute   *model.Restriction
}

// Lookup resolves id and reports the player's active ban and mute.
func (s *Service) Lookup(ctx context.Context, id Identifier) (PlayerStatus, Outcome, error) {
	target, out, err := s.resolve(ctx, id)
	if err != nil || !out.OK() {
		return PlayerStatus{}, out, err
	}

	status := PlayerStatus{Target: target}
	if subject := SubjectFor(model.RestrictionBan, target); !subject.IsZero() {
		status.Ban, err = s.store.ActiveBan(ctx, subject)
		if err != nil {
			return PlayerStatus{}, Outcome{}, fmt.Errorf("reading ban of %s: %w", target.Player.Name, err)
		}
	}
	status.Mute, err = s.store.ActiveMute(ctx, SubjectFor(model.RestrictionMute, target))
	if err != nil {
		return PlayerStatus{}, Outcome{}, fmt.Errorf("reading mute of %s: %w", target.Player.Name, err)
	}
	// A mute issued while the player was logged in is keyed by account and
	// still applies after logout.
	if status.Mute == nil && !target.Session.Authenticated() && target.Player.HasAccount() {
		status.Mute, err = s.store.ActiveMute(ctx, model.AccountSubject(target.Player.AccountID))
		if err != nil {
			return PlayerStatus{}, Outcome{}, fmt.Errorf("reading account mute of %s: %w", target.Player.Name, err)
		}
	}
	return status, Success(target.Player.Name), nil
}

func (s *Service) resolve(ctx context.Context, id Identifier) (Target, Outcome, error) {
	target, err := s.resolver.Resolve(ctx, id)
	switch {
	case errors.Is(err, ErrInvalidIdentifier):
		return Target{}, InvalidArgument(fmt.Sprintf("Invalid player %s '%s'.", id.kind(), id)), nil
	case errors.Is(err, ErrPlayerNotFound):
		return Target{}, NotFound(fmt.Sprintf("No player with %s '%s'.", id.kind(), id)), nil
	case err != nil:
		slog.Error("resolving player", "identifier", id.String(), "error", err)
		return Target{}, Outcome{}, err
	}
	return target, Success(""), nil
}
