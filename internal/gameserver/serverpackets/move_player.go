package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// MovePlayer rebroadcasts a validated movement update to the rest of the
// room. The coordinate layout mirrors the client request: which fields
// follow depends on the direction code.
type MovePlayer struct {
	PlayerID  uint16
	Direction uint8
	HasX      bool
	HasY      bool
	X         uint16
	Y         uint16
}

// Write serializes the packet.
func (p *MovePlayer) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgMovePlayer)
	w.WriteU16(p.PlayerID)
	w.WriteU8(p.Direction)
	if p.HasX {
		w.WriteU16(p.X)
	}
	if p.HasY {
		w.WriteU16(p.Y)
	}
	return w
}
