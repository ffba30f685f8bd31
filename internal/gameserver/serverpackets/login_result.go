// Package serverpackets builds the messages the server sends. Every Write
// returns a pooled protocol.Writer the transport layer frames, encrypts and
// returns to the pool.
package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// LoginFailure carries a login rejection code back under the Login id.
type LoginFailure struct {
	Code uint8
}

// Write serializes the packet.
func (p *LoginFailure) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgLogin)
	w.WriteU8(p.Code)
	return w
}
