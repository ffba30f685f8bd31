package db

import (
	"context"
	"fmt"
	"time"

	"github.com/udisondev/slime2go/internal/model"
)

// BanRepository persists ip, account and device bans.
type BanRepository struct {
	db *DB
}

// NewBanRepository creates the repository.
func NewBanRepository(db *DB) *BanRepository {
	return &BanRepository{db: db}
}

// IsBanned reports whether an active ban exists for the value. Expired bans
// do not count.
func (r *BanRepository) IsBanned(ctx context.Context, kind model.BanKind, value string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM bans
			WHERE kind = $1 AND value = $2
			  AND (expires_at IS NULL OR expires_at > $3)
		)`, string(kind), value, time.Now(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking %s ban for %q: %w", kind, value, err)
	}
	return exists, nil
}

// Insert writes a ban record. A zero expiresAt means permanent.
func (r *BanRepository) Insert(ctx context.Context, kind model.BanKind, value, reason string, expiresAt time.Time) error {
	var expires any
	if !expiresAt.IsZero() {
		expires = expiresAt
	}
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO bans (kind, value, reason, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		string(kind), value, reason, time.Now(), expires,
	)
	if err != nil {
		return fmt.Errorf("inserting %s ban for %q: %w", kind, value, err)
	}
	return nil
}
