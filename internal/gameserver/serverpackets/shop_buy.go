package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// Shop failure cases.
const (
	ShopFailOutOfStock = 1
	ShopFailNoPoints   = 2
)

// ShopBuyOK confirms a purchase and tells the client where the item landed.
type ShopBuyOK struct {
	Category uint8
	Slot     uint8
	ItemID   uint16
	Price    uint16
}

// Write serializes the packet.
func (p *ShopBuyOK) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgShopBuy)
	w.WriteU8(p.Category)
	w.WriteU8(p.Slot)
	w.WriteU16(p.ItemID)
	w.WriteU16(p.Price)
	return w
}

// ShopBuyFail rejects a purchase. Only the out-of-stock case names the
// position.
type ShopBuyFail struct {
	Case  uint8
	PosID uint8
}

// Write serializes the packet.
func (p *ShopBuyFail) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgShopBuyFail)
	w.WriteU8(p.Case)
	if p.Case == ShopFailOutOfStock {
		w.WriteU8(p.PosID)
	}
	return w
}

// ShopStock tells the rest of the room a limited position sold out.
type ShopStock struct {
	PosID uint8
}

// Write serializes the packet.
func (p *ShopStock) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgShopStock)
	w.WriteU8(1)
	w.WriteU8(p.PosID)
	return w
}
