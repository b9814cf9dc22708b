package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/udisondev/moderation/internal/config"
)

// Bus owns the NATS side of announcement delivery: an optional embedded
// server, the client connection and the relay subscription. Broadcasts go
// to local players first, then to the subject.
type Bus struct {
	server      *Server
	conn        *nats.Conn
	unsubscribe func()
	fanout      *Fanout
	closeOnce   sync.Once
}

// Start brings up the bus described by cfg, relaying remote announcements
// into local. On error everything started so far is torn down.
func Start(cfg config.NATSConfig, local Broadcaster) (_ *Bus, err error) {
	b := &Bus{}
	defer func() {
		if err != nil {
			b.Close()
		}
	}()

	url := cfg.URL
	if cfg.Embedded {
		srv, err := NewServer(cfg.Host, cfg.Port)
		if err != nil {
			return nil, err
		}
		b.server = srv
		if err := srv.Start(); err != nil {
			return nil, fmt.Errorf("starting nats server: %w", err)
		}
		if url == "" {
			url = srv.ClientURL()
		}
	}

	b.conn, err = nats.Connect(url, nats.Name("moderationd"), nats.NoEcho())
	if err != nil {
		return nil, fmt.Errorf("connecting to nats %s: %w", url, err)
	}

	b.unsubscribe, err = Relay(b.conn, cfg.Subject, local)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", cfg.Subject, err)
	}
	if err := b.conn.Flush(); err != nil {
		return nil, fmt.Errorf("flushing nats subscription: %w", err)
	}

	b.fanout = NewFanout(local, NewNATS(b.conn, cfg.Subject))
	slog.Info("nats broadcast enabled", "url", url, "subject", cfg.Subject)
	return b, nil
}

func (b *Bus) Broadcast(ctx context.Context, message string) {
	b.fanout.Broadcast(ctx, message)
}

// Close unsubscribes, drops the connection and stops the embedded server.
// Safe to call more than once.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		if b.unsubscribe != nil {
			b.unsubscribe()
		}
		if b.conn != nil {
			b.conn.Close()
		}
		if b.server != nil {
			b.server.Shutdown()
		}
	})
}
