package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// PlayerTyping shows the typing indicator over a player's head.
type PlayerTyping struct {
	PlayerID uint16
}

// Write serializes the packet.
func (p *PlayerTyping) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgPlayerTyping)
	w.WriteU16(p.PlayerID)
	return w
}
