package model

// Character is the persistent state of one playable character. Positions and
// balances are flushed back on logout and on periodic saves.
type Character struct {
	ID           int64
	AccountID    int64
	Username     string
	X            uint16
	Y            uint16
	RoomID       uint16
	BodyID       uint16
	Acs1ID       uint16
	Acs2ID       uint16
	Points       uint32
	BankBalance  uint32
	TreesPlanted uint16
	ObjectsBuilt uint16
	QuestID      uint16
	QuestStep    uint8
	HasSignature bool
	IsModerator  bool
	ClanID       int64 // 0 when clanless
}
