package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// ShopEntry is one shop position as the client renders it.
type ShopEntry struct {
	SlotID   uint8
	Category uint8
	Price    uint16
	Stock    uint8
	ItemID   uint16
}

// RoomShopInfo lists the shop stock of a room. A single entry names its slot
// explicitly; a full listing is implicitly slot-ordered.
type RoomShopInfo struct {
	Entries []ShopEntry
}

// Write serializes the packet.
func (p *RoomShopInfo) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgRoomShopInfo)
	w.WriteU8(uint8(len(p.Entries)))
	if len(p.Entries) == 1 {
		e := p.Entries[0]
		w.WriteU8(e.SlotID)
		w.WriteU8(e.Category)
		w.WriteU16(e.Price)
		w.WriteU8(e.Stock)
		w.WriteU16(e.ItemID)
		return w
	}
	for _, e := range p.Entries {
		w.WriteU8(e.Category)
		w.WriteU16(e.Price)
		w.WriteU8(e.Stock)
		w.WriteU16(e.ItemID)
	}
	return w
}
