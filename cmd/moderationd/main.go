package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/moderation/internal/admin"
	"github.com/udisondev/moderation/internal/api"
	"github.com/udisondev/moderation/internal/broadcast"
	"github.com/udisondev/moderation/internal/config"
	"github.com/udisondev/moderation/internal/db"
	"github.com/udisondev/moderation/internal/session"
)

const ConfigPath = "config/moderation.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	slog.Info("moderation service starting")

	cfgPath := ConfigPath
	if p := os.Getenv("MODERATION_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.Info("config loaded", "addr", cfg.HTTP.Addr(), "api_keys", len(cfg.APIKeys), "nats", cfg.NATS.Enabled())

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	keys, err := api.NewKeyRing(cfg.APIKeys)
	if err != nil {
		return fmt.Errorf("loading api keys: %w", err)
	}

	registry := session.NewRegistry()

	g, gctx := errgroup.WithContext(ctx)

	var announcer admin.Broadcaster = registry
	if cfg.NATS.Enabled() {
		bus, err := broadcast.Start(cfg.NATS, registry)
		if err != nil {
			return err
		}
		defer bus.Close()
		announcer = bus
	}

	restrictions := database.Restrictions()
	service := admin.NewService(database.Players(), restrictions, registry, announcer,
		admin.WithMessages(messagesFromConfig(cfg.Messages)))

	router := api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Service: service,
		Keys:    keys,
	})
	server := api.NewServer(router, cfg.HTTP, logger)

	g.Go(func() error {
		if err := server.Run(gctx); err != nil {
			return fmt.Errorf("admin api: %w", err)
		}
		return nil
	})

	if cfg.PurgeInterval > 0 {
		g.Go(func() error {
			purgeExpired(gctx, restrictions, cfg.PurgeInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// purgeExpired deletes lapsed bans and mutes every interval until ctx is done.
func purgeExpired(ctx context.Context, store *db.PostgresRestrictionRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.PurgeExpired(ctx, now)
			if err != nil {
				slog.Error("purging expired restrictions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("purged expired restrictions", "count", n)
			}
		}
	}
}

func messagesFromConfig(m config.Messages) admin.Messages {
	return admin.Messages{
		Banned:     m.Banned,
		Unbanned:   m.Unbanned,
		Muted:      m.Muted,
		Unmuted:    m.Unmuted,
		Kicked:     m.Kicked,
		Killed:     m.Killed,
		KillResult: m.KillResult,
		Offline:    m.Offline,
		Warped:     m.Warped,
	}
}
