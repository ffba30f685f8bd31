package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// ServerClose tells the client its session ends: shutdown, kick or
// displacement by a second login on the same account.
type ServerClose struct{}

// Write serializes the packet.
func (p *ServerClose) Write() *protocol.Writer {
	return protocol.GetWriter(protocol.MsgServerClose)
}
