package db

import (
	"context"
	"fmt"
	"time"

	"github.com/udisondev/slime2go/internal/model"
)

// ErrClanNameTaken is returned by Create on a duplicate clan name.
var ErrClanNameTaken = fmt.Errorf("clan name already taken")

// ClanRepository persists clans and memberships.
type ClanRepository struct {
	db *DB
}

// NewClanRepository creates the repository.
func NewClanRepository(db *DB) *ClanRepository {
	return &ClanRepository{db: db}
}

// Create founds a clan with the founder as leader. Name uniqueness is
// case-insensitive.
func (r *ClanRepository) Create(ctx context.Context, name string, leaderID int64) (*model.Clan, error) {
	clan := &model.Clan{Name: name, LeaderID: leaderID, CreatedAt: time.Now()}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO clans (name, leader_id, created_at) VALUES ($1, $2, $3) RETURNING id`,
		name, leaderID, clan.CreatedAt,
	).Scan(&clan.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrClanNameTaken
		}
		return nil, fmt.Errorf("creating clan %q: %w", name, err)
	}

	if _, err := r.db.Pool.Exec(ctx,
		`INSERT INTO clan_members (clan_id, character_id, is_leader, joined_at)
		 VALUES ($1, $2, TRUE, $3)`,
		clan.ID, leaderID, clan.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("adding founder to clan %d: %w", clan.ID, err)
	}
	return clan, nil
}

// GetByID retrieves a clan. Returns nil, nil when absent.
func (r *ClanRepository) GetByID(ctx context.Context, id int64) (*model.Clan, error) {
	var clan model.Clan
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, name, leader_id, created_at FROM clans WHERE id = $1`, id,
	).Scan(&clan.ID, &clan.Name, &clan.LeaderID, &clan.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying clan %d: %w", id, err)
	}
	return &clan, nil
}

// Members lists the memberships of a clan, leader first.
func (r *ClanRepository) Members(ctx context.Context, clanID int64) ([]model.ClanMember, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT m.clan_id, m.character_id, c.username, m.is_leader, m.joined_at
		 FROM clan_members m JOIN characters c ON c.id = m.character_id
		 WHERE m.clan_id = $1
		 ORDER BY m.is_leader DESC, m.joined_at`, clanID)
	if err != nil {
		return nil, fmt.Errorf("querying members of clan %d: %w", clanID, err)
	}
	defer rows.Close()

	var members []model.ClanMember
	for rows.Next() {
		var m model.ClanMember
		if err := rows.Scan(&m.ClanID, &m.CharacterID, &m.Username, &m.IsLeader, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scanning clan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members of clan %d: %w", clanID, err)
	}
	return members, nil
}

// MemberCount returns the current member count.
func (r *ClanRepository) MemberCount(ctx context.Context, clanID int64) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM clan_members WHERE clan_id = $1`, clanID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting members of clan %d: %w", clanID, err)
	}
	return n, nil
}

// AddMember joins a character to a clan.
func (r *ClanRepository) AddMember(ctx context.Context, clanID, characterID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO clan_members (clan_id, character_id, is_leader, joined_at)
		 VALUES ($1, $2, FALSE, $3)`,
		clanID, characterID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("adding character %d to clan %d: %w", characterID, clanID, err)
	}
	return nil
}

// RemoveMember drops a membership.
func (r *ClanRepository) RemoveMember(ctx context.Context, clanID, characterID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM clan_members WHERE clan_id = $1 AND character_id = $2`,
		clanID, characterID,
	)
	if err != nil {
		return fmt.Errorf("removing character %d from clan %d: %w", characterID, clanID, err)
	}
	return nil
}

// Delete dissolves a clan: memberships and character links go with it.
func (r *ClanRepository) Delete(ctx context.Context, clanID int64) error {
	tx, err := r.db.Pool.BeginTx(ctx, txDefault)
	if err != nil {
		return fmt.Errorf("beginning clan delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE characters SET clan_id = NULL WHERE clan_id = $1`, clanID); err != nil {
		return fmt.Errorf("unlinking characters of clan %d: %w", clanID, err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM clan_members WHERE clan_id = $1`, clanID); err != nil {
		return fmt.Errorf("deleting members of clan %d: %w", clanID, err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM clans WHERE id = $1`, clanID); err != nil {
		return fmt.Errorf("deleting clan %d: %w", clanID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing clan delete: %w", err)
	}
	return nil
}
