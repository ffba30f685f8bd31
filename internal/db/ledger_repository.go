package db

import (
	"context"
	"fmt"

	"github.com/udisondev/slime2go/internal/model"
)

// LedgerRepository appends the audit trail of wallet and bank mutations.
// The table is append-only; committed game money never moves without a row
// here.
type LedgerRepository struct {
	db *DB
}

// NewLedgerRepository creates the repository.
func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append writes one committed ledger entry.
func (r *LedgerRepository) Append(ctx context.Context, e model.LedgerEntry) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO points_ledger (character_id, op, amount, points_after, bank_after, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.CharacterID, string(e.Op), e.Amount, e.PointsAfter, e.BankAfter, e.Detail, e.At,
	)
	if err != nil {
		return fmt.Errorf("appending ledger entry for character %d: %w", e.CharacterID, err)
	}
	return nil
}
