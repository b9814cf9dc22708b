package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/moderation/internal/model"
)

// PostgresPlayerRepository reads and writes player records.
type PostgresPlayerRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPlayerRepository creates a new PostgreSQL player repository.
func NewPostgresPlayerRepository(pool *pgxpool.Pool) *PostgresPlayerRepository {
	return &PostgresPlayerRepository{pool: pool}
}

// FindPlayerByName returns the player with the given name, compared case-insensitively.
// Returns nil, nil if no player matches.
func (r *PostgresPlayerRepository) FindPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	p, err := r.scanOne(ctx,
		`SELECT id, account_id, name FROM players WHERE lower(name) = lower($1)`, name)
	if err != nil {
		return nil, fmt.Errorf("querying player %q: %w", name, err)
	}
	return p, nil
}

// FindPlayerByID returns the player with the given id.
// Returns nil, nil if no player matches.
func (r *PostgresPlayerRepository) FindPlayerByID(ctx context.Context, id uuid.UUID) (*model.Player, error) {
	p, err := r.scanOne(ctx,
		`SELECT id, account_id, name FROM players WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("querying player %s: %w", id, err)
	}
	return p, nil
}

func (r *PostgresPlayerRepository) scanOne(ctx context.Context, query string, arg any) (*model.Player, error) {
	var (
		p       model.Player
		account uuid.NullUUID
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(&p.ID, &account, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if account.Valid {
		p.AccountID = account.UUID
	}
	return &p, nil
}

// CreatePlayer inserts a player record.
func (r *PostgresPlayerRepository) CreatePlayer(ctx context.Context, p model.Player) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO players (id, account_id, name) VALUES ($1, $2, $3)`,
		p.ID, nullUUID(p.AccountID), p.Name,
	)
	if err != nil {
		return fmt.Errorf("creating player %q: %w", p.Name, err)
	}
	return nil
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}
