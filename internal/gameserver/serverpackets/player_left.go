package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// PlayerLeft tells a room that a player disconnected. It goes out under the
// Logout id.
type PlayerLeft struct {
	PlayerID uint16
}

// Write serializes the packet.
func (p *PlayerLeft) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgLogout)
	w.WriteU16(p.PlayerID)
	return w
}
