package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// Chat carries a chat line to the room, sender included.
type Chat struct {
	PlayerID uint16
	Message  string
}

// Write serializes the packet.
func (p *Chat) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgChat)
	w.WriteU16(p.PlayerID)
	w.WriteString(p.Message)
	return w
}
