package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// DiscardItem shows a dropped item appearing on the room floor.
type DiscardItem struct {
	X          uint16
	Y          uint16
	ItemID     uint16
	InstanceID uint16
}

// Write serializes the packet.
func (p *DiscardItem) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgDiscardItem)
	w.WriteU16(p.X)
	w.WriteU16(p.Y)
	w.WriteU16(p.ItemID)
	w.WriteU16(p.InstanceID)
	return w
}
