package serverpackets

import (
	"time"

	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/protocol"
)

// LoginSuccess is the full login payload: identity, position, balances,
// progress and the entire inventory. The leading result byte 1 tells the
// client the rest of the body follows.
type LoginSuccess struct {
	PlayerID     uint16
	ServerTime   uint32
	MOTD         string
	Day          uint8
	Hour         uint8
	Minute       uint8
	Username     string
	X            uint16
	Y            uint16
	RoomID       uint16
	BodyID       uint16
	Acs1ID       uint16
	Acs2ID       uint16
	Points       uint32
	HasSignature bool
	QuestID      uint16
	QuestStep    uint8
	TreesPlanted uint16
	ObjectsBuilt uint16
	Inventory    model.Inventory
}

// NewLoginSuccess builds the packet from a freshly spawned player.
func NewLoginSuccess(p *model.Player, motd string, now time.Time) *LoginSuccess {
	x, y := p.Position()
	body, acs1, acs2 := p.Appearance()
	trees, objects, questID, questStep, signed := p.Progress()
	return &LoginSuccess{
		PlayerID:     p.ID,
		ServerTime:   uint32(now.Unix()),
		MOTD:         motd,
		Day:          uint8(now.Day()),
		Hour:         uint8(now.Hour()),
		Minute:       uint8(now.Minute()),
		Username:     p.Username,
		X:            x,
		Y:            y,
		RoomID:       p.RoomID(),
		BodyID:       body,
		Acs1ID:       acs1,
		Acs2ID:       acs2,
		Points:       p.Points(),
		HasSignature: signed,
		QuestID:      questID,
		QuestStep:    questStep,
		TreesPlanted: trees,
		ObjectsBuilt: objects,
		Inventory:    p.Inventory(),
	}
}

// Write serializes the packet.
func (p *LoginSuccess) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgLogin)
	w.WriteU8(1)
	w.WriteU16(p.PlayerID)
	w.WriteU32(p.ServerTime)
	w.WriteString(p.MOTD)
	w.WriteU8(p.Day)
	w.WriteU8(p.Hour)
	w.WriteU8(p.Minute)
	w.WriteString(p.Username)
	w.WriteU16(p.X)
	w.WriteU16(p.Y)
	w.WriteU16(p.RoomID)
	w.WriteU16(p.BodyID)
	w.WriteU16(p.Acs1ID)
	w.WriteU16(p.Acs2ID)
	w.WriteU32(p.Points)
	if p.HasSignature {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
	w.WriteU16(p.QuestID)
	w.WriteU8(p.QuestStep)
	w.WriteU16(p.TreesPlanted)
	w.WriteU16(p.ObjectsBuilt)

	for _, e := range p.Inventory.Emotes {
		w.WriteU8(e)
	}
	for _, id := range p.Inventory.Outfits {
		w.WriteU16(id)
	}
	for _, id := range p.Inventory.Accessories {
		w.WriteU16(id)
	}
	for _, id := range p.Inventory.Items {
		w.WriteU16(id)
	}
	// Tools occupy a single byte each on the wire.
	for _, id := range p.Inventory.Tools {
		w.WriteU8(uint8(id))
	}
	return w
}
