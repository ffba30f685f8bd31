package serverpackets

import (
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/protocol"
)

// NewPlayer announces a player appearing in a room. Case 1 introduces a
// fresh login and expects the recipients to answer with their own positions;
// case 2 carries the current movement state of an already-moving player.
type NewPlayer struct {
	X        uint16
	Y        uint16
	PlayerID uint16
	RoomID   uint16
	Username string
	BodyID   uint16
	Acs1ID   uint16
	Acs2ID   uint16

	// case 2 movement state
	ILeft   uint8
	IRight  uint8
	IUp     uint8
	IDown   uint8
	IUpHeld uint8
}

// NewNewPlayer snapshots a player for announcement.
func NewNewPlayer(p *model.Player) *NewPlayer {
	x, y := p.Position()
	body, acs1, acs2 := p.Appearance()
	return &NewPlayer{
		X:        x,
		Y:        y,
		PlayerID: p.ID,
		RoomID:   p.RoomID(),
		Username: p.Username,
		BodyID:   body,
		Acs1ID:   acs1,
		Acs2ID:   acs2,
	}
}

// WriteCase1 serializes the fresh-login announcement.
func (p *NewPlayer) WriteCase1() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgNewPlayer)
	w.WriteU8(1)
	w.WriteU16(p.X)
	w.WriteU16(p.Y)
	w.WriteU16(p.PlayerID)
	w.WriteU16(p.RoomID)
	w.WriteString(p.Username)
	w.WriteU16(p.BodyID)
	w.WriteU16(p.Acs1ID)
	w.WriteU16(p.Acs2ID)
	return w
}

// WriteCase2 serializes the announcement with movement state, used on room
// changes.
func (p *NewPlayer) WriteCase2() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgNewPlayer)
	w.WriteU8(2)
	w.WriteU16(p.X)
	w.WriteU16(p.Y)
	w.WriteU16(p.PlayerID)
	w.WriteU8(p.ILeft)
	w.WriteU8(p.IRight)
	w.WriteU8(p.IUp)
	w.WriteU8(p.IDown)
	w.WriteU8(p.IUpHeld)
	w.WriteU16(p.RoomID)
	w.WriteString(p.Username)
	w.WriteU16(p.BodyID)
	w.WriteU16(p.Acs1ID)
	w.WriteU16(p.Acs2ID)
	return w
}

// WriteRoster serializes the flat roster entry a warping player receives for
// each player already in the destination room.
func (p *NewPlayer) WriteRoster() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgNewPlayer)
	w.WriteU16(p.PlayerID)
	w.WriteString(p.Username)
	w.WriteU16(p.X)
	w.WriteU16(p.Y)
	w.WriteU16(p.BodyID)
	w.WriteU16(p.Acs1ID)
	w.WriteU16(p.Acs2ID)
	return w
}
