package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/udisondev/slime2go/internal/model"
)

// ErrUsernameTaken is returned by CreateAccount on a duplicate username.
var ErrUsernameTaken = fmt.Errorf("username already taken")

// AccountRepository persists login identities. Usernames are stored
// lowercased; uniqueness is case-insensitive.
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates the repository.
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByUsername retrieves an account. Returns nil, nil if it does not exist.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	username = strings.ToLower(username)
	var acc model.Account
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, username, password_hash, is_banned, created_at, last_login_at, last_ip, last_device
		 FROM accounts WHERE username = $1`, username,
	).Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.IsBanned,
		&acc.CreatedAt, &acc.LastLoginAt, &acc.LastIP, &acc.LastDevice)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying account %q: %w", username, err)
	}
	return &acc, nil
}

// Create inserts a new account and returns its id.
func (r *AccountRepository) Create(ctx context.Context, username, passwordHash, ip, device string) (int64, error) {
	username = strings.ToLower(username)
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO accounts (username, password_hash, created_at, last_login_at, last_ip, last_device)
		 VALUES ($1, $2, $3, $3, $4, $5)
		 RETURNING id`,
		username, passwordHash, time.Now(), ip, device,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("creating account %q: %w", username, err)
	}
	return id, nil
}

// UpdateLastLogin records a successful login.
func (r *AccountRepository) UpdateLastLogin(ctx context.Context, id int64, ip, device string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE accounts SET last_login_at = $1, last_ip = $2, last_device = $3 WHERE id = $4`,
		time.Now(), ip, device, id,
	)
	if err != nil {
		return fmt.Errorf("updating last login for account %d: %w", id, err)
	}
	return nil
}

// SetBanned flips the account ban flag.
func (r *AccountRepository) SetBanned(ctx context.Context, id int64, banned bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE accounts SET is_banned = $1 WHERE id = $2`, banned, id,
	)
	if err != nil {
		return fmt.Errorf("setting ban flag for account %d: %w", id, err)
	}
	return nil
}
