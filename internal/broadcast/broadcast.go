// Package broadcast delivers moderation announcements to connected players,
// locally and across processes over NATS.
package broadcast

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Broadcaster sends a message to every connected player.
type Broadcaster interface {
	Broadcast(ctx context.Context, message string)
}

// Fanout forwards every message to all of its targets in order.
type Fanout struct {
	targets []Broadcaster
}

// NewFanout creates a fan-out over targets. Nil targets are skipped.
func NewFanout(targets ...Broadcaster) *Fanout {
	f := &Fanout{targets: make([]Broadcaster, 0, len(targets))}
	for _, t := range targets {
		if t != nil {
			f.targets = append(f.targets, t)
		}
	}
	return f
}

func (f *Fanout) Broadcast(ctx context.Context, message string) {
	for _, t := range f.targets {
		t.Broadcast(ctx, message)
	}
}

// NATS publishes announcements on a subject so other game processes can
// deliver them to their own players.
type NATS struct {
	conn    *nats.Conn
	subject string
}

// NewNATS creates a publisher on conn. Connect with nats.NoEcho() when the
// same process also relays the subject, or players get every message twice.
func NewNATS(conn *nats.Conn, subject string) *NATS {
	return &NATS{conn: conn, subject: subject}
}

func (n *NATS) Broadcast(ctx context.Context, message string) {
	if err := n.conn.Publish(n.subject, []byte(message)); err != nil {
		slog.WarnContext(ctx, "publishing announcement", "subject", n.subject, "error", err)
	}
}

// Relay delivers announcements published by other processes to local.
// Returns an unsubscribe function.
func Relay(conn *nats.Conn, subject string, local Broadcaster) (func(), error) {
	sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		local.Broadcast(context.Background(), string(msg.Data))
	})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := sub.Unsubscribe(); err != nil {
			slog.Warn("unsubscribing relay", "subject", subject, "error", err)
		}
	}, nil
}
