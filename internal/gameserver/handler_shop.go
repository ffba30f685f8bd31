package gameserver

import (
	"context"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/db"
	"github.com/udisondev/slime2go/internal/gameserver/clientpackets"
	"github.com/udisondev/slime2go/internal/gameserver/serverpackets"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/ratelimit"
)

// shopInfoPacket flattens shop rows into the wire listing. Stock clamps to
// a byte; unlimited positions always show as 1.
func shopInfoPacket(items []db.ShopItem) *serverpackets.RoomShopInfo {
	pkt := &serverpackets.RoomShopInfo{Entries: make([]serverpackets.ShopEntry, 0, len(items))}
	for _, it := range items {
		stock := uint8(1)
		if it.IsLimited {
			switch {
			case it.Stock <= 0:
				stock = 0
			case it.Stock > 255:
				stock = 255
			default:
				stock = uint8(it.Stock)
			}
		}
		pkt.Entries = append(pkt.Entries, serverpackets.ShopEntry{
			SlotID:   it.SlotID,
			Category: it.Category,
			Price:    uint16(it.Price),
			Stock:    stock,
			ItemID:   it.ItemID,
		})
	}
	return pkt
}

// withinShopRange checks the buyer stands near the shop position. Unplaced
// positions (zero anchor) sell from anywhere.
func withinShopRange(px, py, ax, ay uint16) bool {
	if ax == 0 && ay == 0 {
		return true
	}
	dx := int64(px) - int64(ax)
	dy := int64(py) - int64(ay)
	return dx*dx+dy*dy <= constants.MaxShopDistance*constants.MaxShopDistance
}

func (h *Handler) handleShopInfo(ctx context.Context, c *Client) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	items, err := h.stores.Shops.ItemsByRoom(ctx, p.RoomID())
	if err != nil {
		h.log.Error("loading shop stock", "room", p.RoomID(), "error", err)
		return nil
	}
	return c.SendMessage(shopInfoPacket(items).Write())
}

func (h *Handler) handleShopBuy(ctx context.Context, c *Client, body []byte) error {
	if !h.allow(c, ratelimit.ActionShopBuy) {
		return nil
	}
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseShopBuy(body)
	if err != nil {
		return nil
	}

	item, err := h.stores.Shops.Get(ctx, p.RoomID(), req.PosID)
	if err != nil || item == nil {
		h.log.Debug("buying unknown shop position", "player", p.Username, "pos", req.PosID)
		return nil
	}

	px, py := p.Position()
	if !withinShopRange(px, py, item.AnchorX, item.AnchorY) {
		h.log.Warn("purchase from across the room",
			"player", p.Username, "pos", req.PosID, "x", px, "y", py)
		return nil
	}

	fail := func(code uint8) error {
		pkt := serverpackets.ShopBuyFail{Case: code, PosID: req.PosID}
		return c.SendMessage(pkt.Write())
	}

	if !item.InStock() {
		return fail(serverpackets.ShopFailOutOfStock)
	}

	cat := model.Category(item.Category)
	if !cat.Valid() {
		h.log.Error("shop row with bad category", "id", item.ID, "category", item.Category)
		return nil
	}
	var slot uint8
	p.UpdateInventory(func(inv *model.Inventory) {
		slot = inv.FreeSlot(cat)
	})
	if slot == 0 {
		return fail(serverpackets.ShopFailNoPoints)
	}

	entry, err := p.Debit(item.Price, "shop purchase")
	if err != nil {
		return fail(serverpackets.ShopFailNoPoints)
	}

	soldOut := false
	if item.IsLimited {
		ok, err := h.stores.Shops.DecrementStock(ctx, item.ID)
		if err != nil || !ok {
			// stock raced away under us, refund
			if _, cerr := p.Credit(item.Price, "shop refund"); cerr != nil {
				h.log.Error("refunding failed purchase", "player", p.Username, "error", cerr)
			}
			return fail(serverpackets.ShopFailOutOfStock)
		}
		soldOut = item.Stock <= 1
	}

	p.UpdateInventory(func(inv *model.Inventory) {
		inv.SetSlot(cat, slot, item.ItemID)
	})

	if err := h.stores.Ledger.Append(ctx, entry); err != nil {
		h.log.Error("recording purchase", "player", p.Username, "error", err)
	}

	ok := serverpackets.ShopBuyOK{
		Category: item.Category,
		Slot:     slot,
		ItemID:   item.ItemID,
		Price:    uint16(item.Price),
	}
	if err := c.SendMessage(ok.Write()); err != nil {
		return err
	}

	h.log.Info("shop purchase", "player", p.Username, "item", item.ItemID, "price", item.Price)

	if soldOut {
		room, err := h.room(p)
		if err != nil {
			return nil
		}
		stock := serverpackets.ShopStock{PosID: req.PosID}
		h.broadcast.ToRoom(room, p.ID, stock.Write())
	}
	return nil
}
