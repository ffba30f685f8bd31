package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// RegisterResult carries the registration outcome code back under the
// Register id.
type RegisterResult struct {
	Code uint8
}

// Write serializes the packet.
func (p *RegisterResult) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgRegister)
	w.WriteU8(p.Code)
	return w
}
