package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// Action plays a body action on a player.
type Action struct {
	PlayerID uint16
	ActionID uint8
}

// Write serializes the packet.
func (p *Action) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgAction)
	w.WriteU16(p.PlayerID)
	w.WriteU8(p.ActionID)
	return w
}
