package model

import "time"

// Clan is the persistent clan record.
type Clan struct {
	ID        int64
	Name      string
	LeaderID  int64 // character id of the founder or current leader
	CreatedAt time.Time
}

// ClanMember is one membership row.
type ClanMember struct {
	ClanID      int64
	CharacterID int64
	Username    string
	IsLeader    bool
	JoinedAt    time.Time
}
