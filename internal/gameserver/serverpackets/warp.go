package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// WarpDepart tells the old room a player warped away.
type WarpDepart struct {
	PlayerID uint16
}

// Write serializes the packet.
func (p *WarpDepart) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgWarp)
	w.WriteU16(p.PlayerID)
	w.WriteU8(2)
	return w
}

// WarpArrive tells the new room a player warped in and where.
type WarpArrive struct {
	PlayerID uint16
	X        uint16
	Y        uint16
}

// Write serializes the packet.
func (p *WarpArrive) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgWarp)
	w.WriteU16(p.PlayerID)
	w.WriteU8(1)
	w.WriteU16(p.X)
	w.WriteU16(p.Y)
	return w
}
