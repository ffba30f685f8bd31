package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// Ping answers a keepalive probe with an empty body.
type Ping struct{}

// Write serializes the packet.
func (p *Ping) Write() *protocol.Writer {
	return protocol.GetWriter(protocol.MsgPing)
}
