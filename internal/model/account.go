// Package model holds the domain types shared between the game server, the
// world state and the persistence layer.
package model

import "time"

// Account is the persistent login identity. The password is stored as a
// bcrypt hash, never in clear.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	IsBanned     bool
	CreatedAt    time.Time
	LastLoginAt  time.Time
	LastIP       string
	LastDevice   string
}

// BanKind discriminates ban records.
type BanKind string

const (
	BanKindIP      BanKind = "ip"
	BanKindAccount BanKind = "account"
	BanKindDevice  BanKind = "device"
)

// Ban is a persistent ban record. A zero ExpiresAt means permanent.
type Ban struct {
	ID        int64
	Kind      BanKind
	Value     string
	Reason    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Active reports whether the ban still applies at now.
func (b *Ban) Active(now time.Time) bool {
	return b.ExpiresAt.IsZero() || now.Before(b.ExpiresAt)
}
