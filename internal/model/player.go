package model

import (
	"sync"
	"time"

	"github.com/udisondev/slime2go/internal/constants"
)

// Player is the runtime state of one logged-in character. A Player is owned
// by exactly one connection; the mutex guards fields the world and the
// broadcast paths read concurrently.
type Player struct {
	mu sync.Mutex

	// immutable after login
	ID          uint16
	AccountID   int64
	CharacterID int64
	Username    string
	IsModerator bool

	roomID uint16
	x      uint16
	y      uint16

	bodyID uint16
	acs1ID uint16
	acs2ID uint16

	points uint32
	bank   uint32

	inventory Inventory
	clanID    int64
	lastUse   map[uint16]time.Time

	onGround   bool
	canMove    bool
	lastMoveAt time.Time

	treesPlanted uint16
	objectsBuilt uint16
	questID      uint16
	questStep    uint8
	hasSignature bool
}

// NewPlayer builds the runtime player from its persistent state.
func NewPlayer(id uint16, ch *Character, inv *Inventory) *Player {
	return &Player{
		ID:           id,
		AccountID:    ch.AccountID,
		CharacterID:  ch.ID,
		Username:     ch.Username,
		IsModerator:  ch.IsModerator,
		roomID:       ch.RoomID,
		x:            ch.X,
		y:            ch.Y,
		bodyID:       ch.BodyID,
		acs1ID:       ch.Acs1ID,
		acs2ID:       ch.Acs2ID,
		points:       ch.Points,
		bank:         ch.BankBalance,
		inventory:    *inv,
		clanID:       ch.ClanID,
		lastUse:      make(map[uint16]time.Time),
		onGround:     true,
		canMove:      true,
		treesPlanted: ch.TreesPlanted,
		objectsBuilt: ch.ObjectsBuilt,
		questID:      ch.QuestID,
		questStep:    ch.QuestStep,
		hasSignature: ch.HasSignature,
	}
}

// Position returns the current coordinates.
func (p *Player) Position() (x, y uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y
}

// SetPosition moves the player without validation. Used for spawns and warps.
func (p *Player) SetPosition(x, y uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.x = x
	p.y = y
}

// RoomID returns the room the player currently occupies.
func (p *Player) RoomID() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.roomID
}

// SetRoomID records a room change and resets ground state to the new spawn.
func (p *Player) SetRoomID(roomID, x, y uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roomID = roomID
	p.x = x
	p.y = y
	p.onGround = true
}

// ApplyMovement commits a validated movement update.
func (p *Player) ApplyMovement(direction uint8, x, y uint16, at time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch direction {
	case constants.DirJump:
		p.onGround = false
		p.x = x
	case constants.DirLanding:
		p.onGround = true
		p.x = x
		p.y = y
	case constants.DirStartLeftGround, constants.DirStartRightGround,
		constants.DirStopLeftGround, constants.DirStopRightGround:
		p.x = x
		p.y = y
	}
	p.lastMoveAt = at
}

// MovementState returns the fields movement validation reads.
func (p *Player) MovementState() (onGround, canMove bool, lastMoveAt time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.onGround, p.canMove, p.lastMoveAt
}

// SetCanMove toggles the movement permission (cannons, cutscenes, mod freeze).
func (p *Player) SetCanMove(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.canMove = v
}

// Appearance returns the sprite ids broadcasts carry.
func (p *Player) Appearance() (body, acs1, acs2 uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bodyID, p.acs1ID, p.acs2ID
}

// SetBody changes the body sprite.
func (p *Player) SetBody(body uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodyID = body
}

// SetAccessory changes one of the two accessory anchors.
func (p *Player) SetAccessory(anchor uint8, id uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if anchor == 1 {
		p.acs1ID = id
	} else {
		p.acs2ID = id
	}
}

// Inventory returns a copy of the inventory.
func (p *Player) Inventory() Inventory {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inventory
}

// UpdateInventory runs fn with the inventory locked. fn must not block.
func (p *Player) UpdateInventory(fn func(inv *Inventory)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.inventory)
}

// TryUseItem checks the item against its last-use timestamp and, when the
// cooldown has passed, records now as the new last use.
func (p *Player) TryUseItem(itemID uint16, cooldown time.Duration, now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if last, ok := p.lastUse[itemID]; ok && now.Sub(last) < cooldown {
		return false
	}
	if p.lastUse == nil {
		p.lastUse = make(map[uint16]time.Time)
	}
	p.lastUse[itemID] = now
	return true
}

// ClanID returns the clan membership, 0 when clanless.
func (p *Player) ClanID() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clanID
}

// SetClanID records joining or leaving a clan.
func (p *Player) SetClanID(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clanID = id
}

// Progress returns the cosmetic progress counters login data carries.
func (p *Player) Progress() (trees, objects, questID uint16, questStep uint8, signed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.treesPlanted, p.objectsBuilt, p.questID, p.questStep, p.hasSignature
}

// IncTreesPlanted bumps the planting counter.
func (p *Player) IncTreesPlanted() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.treesPlanted++
}

// Snapshot flushes runtime state back into a persistent Character row.
func (p *Player) Snapshot() Character {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Character{
		ID:           p.CharacterID,
		AccountID:    p.AccountID,
		Username:     p.Username,
		X:            p.x,
		Y:            p.y,
		RoomID:       p.roomID,
		BodyID:       p.bodyID,
		Acs1ID:       p.acs1ID,
		Acs2ID:       p.acs2ID,
		Points:       p.points,
		BankBalance:  p.bank,
		TreesPlanted: p.treesPlanted,
		ObjectsBuilt: p.objectsBuilt,
		QuestID:      p.questID,
		QuestStep:    p.questStep,
		HasSignature: p.hasSignature,
		IsModerator:  p.IsModerator,
		ClanID:       p.clanID,
	}
}
