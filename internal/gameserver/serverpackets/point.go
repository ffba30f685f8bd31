package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// Point tells the rest of the room that a slime point was taken.
type Point struct {
	Index uint8
}

// Write serializes the packet.
func (p *Point) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgPoint)
	w.WriteU8(p.Index)
	return w
}
