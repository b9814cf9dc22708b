package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/moderation/internal/model"
)

// PostgresRestrictionRepository stores ban and mute records.
// Each write is a single statement keyed by (kind, subject), so concurrent
// writers for one subject serialize on the row and the last commit wins.
type PostgresRestrictionRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresRestrictionRepository creates a new PostgreSQL restriction repository.
func NewPostgresRestrictionRepository(pool *pgxpool.Pool) *PostgresRestrictionRepository {
	return &PostgresRestrictionRepository{pool: pool, now: time.Now}
}

// AddBan stores ban, replacing any ban of the same subject.
func (r *PostgresRestrictionRepository) AddBan(ctx context.Context, ban model.Restriction) error {
	ban.Kind = model.RestrictionBan
	return r.upsert(ctx, ban)
}

// RemoveBan deletes the subject's ban. Removing a missing ban is not an error.
func (r *PostgresRestrictionRepository) RemoveBan(ctx context.Context, subject model.Subject) error {
	return r.delete(ctx, model.RestrictionBan, subject)
}

// AddMute stores mute, replacing any mute of the same subject.
func (r *PostgresRestrictionRepository) AddMute(ctx context.Context, mute model.Restriction) error {
	mute.Kind = model.RestrictionMute
	return r.upsert(ctx, mute)
}

// RemoveMute deletes the subject's mute. Removing a missing mute is not an error.
func (r *PostgresRestrictionRepository) RemoveMute(ctx context.Context, subject model.Subject) error {
	return r.delete(ctx, model.RestrictionMute, subject)
}

// ActiveBan returns the subject's unexpired ban, or nil.
func (r *PostgresRestrictionRepository) ActiveBan(ctx context.Context, subject model.Subject) (*model.Restriction, error) {
	return r.active(ctx, model.RestrictionBan, subject)
}

// ActiveMute returns the subject's unexpired mute, or nil.
func (r *PostgresRestrictionRepository) ActiveMute(ctx context.Context, subject model.Subject) (*model.Restriction, error) {
	return r.active(ctx, model.RestrictionMute, subject)
}

// PurgeExpired deletes records that expired before now and returns how many were removed.
func (r *PostgresRestrictionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM restrictions WHERE expires_at IS NOT NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("purging expired restrictions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRestrictionRepository) upsert(ctx context.Context, rec model.Restriction) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO restrictions (kind, subject_kind, subject_id, expires_at, reason, issued_by, ip, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (kind, subject_kind, subject_id) DO UPDATE SET
		     expires_at = EXCLUDED.expires_at,
		     reason     = EXCLUDED.reason,
		     issued_by  = EXCLUDED.issued_by,
		     ip         = EXCLUDED.ip,
		     created_at = EXCLUDED.created_at`,
		string(rec.Kind), string(rec.Subject.Kind), rec.Subject.ID,
		rec.ExpiresAt, rec.Reason, rec.IssuedBy, rec.IP, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("storing %s for %s: %w", rec.Kind, rec.Subject, err)
	}
	return nil
}

func (r *PostgresRestrictionRepository) delete(ctx context.Context, kind model.RestrictionKind, subject model.Subject) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM restrictions WHERE kind = $1 AND subject_kind = $2 AND subject_id = $3`,
		string(kind), string(subject.Kind), subject.ID,
	)
	if err != nil {
		return fmt.Errorf("deleting %s for %s: %w", kind, subject, err)
	}
	return nil
}

func (r *PostgresRestrictionRepository) active(ctx context.Context, kind model.RestrictionKind, subject model.Subject) (*model.Restriction, error) {
	rec := model.Restriction{Kind: kind, Subject: subject}
	err := r.pool.QueryRow(ctx,
		`SELECT expires_at, reason, issued_by, ip, created_at
		 FROM restrictions
		 WHERE kind = $1 AND subject_kind = $2 AND subject_id = $3
		   AND (expires_at IS NULL OR expires_at > $4)`,
		string(kind), string(subject.Kind), subject.ID, r.now(),
	).Scan(&rec.ExpiresAt, &rec.Reason, &rec.IssuedBy, &rec.IP, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s for %s: %w", kind, subject, err)
	}
	return &rec, nil
}
