package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// UseItemEffect shows an item effect at a position, broadcast to the whole
// room including the user.
type UseItemEffect struct {
	ItemID uint16
	X      uint16
	Y      uint16
}

// Write serializes the packet.
func (p *UseItemEffect) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgUseItem)
	w.WriteU16(p.ItemID)
	w.WriteU16(p.X)
	w.WriteU16(p.Y)
	return w
}

// UseItemBubbles is the bubble variant: a directed stream of several bubble
// sprites.
type UseItemBubbles struct {
	ItemID    uint16
	X         uint16
	Y         uint16
	Direction uint8
	Amount    uint8
}

// Write serializes the packet.
func (p *UseItemBubbles) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgUseItem)
	w.WriteU16(p.ItemID)
	w.WriteU16(p.X)
	w.WriteU16(p.Y)
	w.WriteU8(p.Direction)
	w.WriteU8(p.Amount)
	return w
}

// UseItemSound is the soundmaker variant: the effect follows a player
// instead of a position.
type UseItemSound struct {
	ItemID   uint16
	PlayerID uint16
}

// Write serializes the packet.
func (p *UseItemSound) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgUseItem)
	w.WriteU16(p.ItemID)
	w.WriteU16(p.PlayerID)
	return w
}

// UseItemWarp tells the user a warp wing fired and where they land.
type UseItemWarp struct {
	RoomID uint16
	X      uint16
	Y      uint16
}

// Write serializes the packet.
func (p *UseItemWarp) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgUseItem)
	w.WriteU16(1)
	w.WriteU8(1)
	w.WriteU16(p.RoomID)
	w.WriteU16(p.X)
	w.WriteU16(p.Y)
	return w
}
