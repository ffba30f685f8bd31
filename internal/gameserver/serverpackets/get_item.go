package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// GetItem puts an item into an inventory slot of the receiving client.
type GetItem struct {
	Slot   uint8
	ItemID uint16
}

// Write serializes the packet.
func (p *GetItem) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgGetItem)
	w.WriteU8(p.Slot)
	w.WriteU16(p.ItemID)
	return w
}
