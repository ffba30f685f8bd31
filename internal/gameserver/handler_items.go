package gameserver

import (
	"time"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/gameserver/clientpackets"
	"github.com/udisondev/slime2go/internal/gameserver/serverpackets"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/ratelimit"
	"github.com/udisondev/slime2go/internal/validate"
	"github.com/udisondev/slime2go/internal/world"
)

const bubbleAmount = 5

func (h *Handler) handleUseItem(c *Client, body []byte) error {
	if !h.allow(c, ratelimit.ActionUseItem) {
		return nil
	}
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseUseItem(body)
	if err != nil {
		return nil
	}
	if err := validate.ItemSlot(req.Slot); err != nil {
		h.log.Warn("invalid use slot", "player", p.Username, "slot", req.Slot)
		return nil
	}

	inv := p.Inventory()
	itemID := inv.Slot(model.CategoryItem, req.Slot)
	if itemID == 0 {
		return nil
	}
	if !p.TryUseItem(itemID, constants.ItemUseCooldownSecs*time.Second, time.Now()) {
		h.log.Debug("item on cooldown", "player", p.Username, "item", itemID)
		return nil
	}

	// Effect coordinates fall back to the player position when the client
	// omits them or places the effect out of bounds.
	x, y := p.Position()
	if req.HasPos && validate.Position(req.X, req.Y) == nil {
		x, y = req.X, req.Y
	}

	room, err := h.room(p)
	if err != nil {
		return nil
	}

	consume := func() {
		p.UpdateInventory(func(inv *model.Inventory) {
			inv.SetSlot(model.CategoryItem, req.Slot, 0)
		})
	}

	switch model.KindOf(itemID) {
	case model.ItemWarpWing:
		return h.useWarpWing(c, p, req.Slot)

	case model.ItemVisualEffect:
		pkt := serverpackets.UseItemEffect{ItemID: itemID, X: x, Y: y}
		h.broadcast.ToRoom(room, 0, pkt.Write())
		consume()

	case model.ItemBubbles:
		pkt := serverpackets.UseItemBubbles{
			ItemID: itemID, X: x, Y: y,
			Direction: req.Direction, Amount: bubbleAmount,
		}
		h.broadcast.ToRoom(room, 0, pkt.Write())
		consume()

	case model.ItemSoundmaker:
		pkt := serverpackets.UseItemSound{ItemID: itemID, PlayerID: p.ID}
		h.broadcast.ToRoom(room, 0, pkt.Write())
		consume()

	case model.ItemSlimebag:
		value := model.SlimebagValue(itemID)
		if _, err := p.Credit(value, "slimebag"); err != nil {
			// capped wallets keep the unopened bag
			return nil
		}
		consume()
		h.log.Info("slimebag opened", "player", p.Username, "value", value)

	case model.ItemSoda, model.ItemChickenMine, model.ItemCannonKit:
		// The client renders these on its own, the server only consumes.
		consume()

	case model.ItemSeed:
		// Seeds go through the planting message, a bare use is a no-op.
		return nil

	default:
		h.log.Debug("unusable item", "player", p.Username, "item", itemID)
	}
	return nil
}

// useWarpWing sends the player home. The wing packet makes the client run
// its own warp, so the server just mirrors the room change.
func (h *Handler) useWarpWing(c *Client, p *model.Player, slot uint8) error {
	pkt := serverpackets.UseItemWarp{
		RoomID: constants.SpawnRoomID,
		X:      constants.SpawnX,
		Y:      constants.SpawnY,
	}
	if err := c.SendMessage(pkt.Write()); err != nil {
		return err
	}

	h.cheats.AllowWarp(p.ID)
	depart := serverpackets.WarpDepart{PlayerID: p.ID}
	arrive := serverpackets.WarpArrive{PlayerID: p.ID, X: constants.SpawnX, Y: constants.SpawnY}
	err := h.world.MovePlayer(p, constants.SpawnRoomID, constants.SpawnX, constants.SpawnY,
		func(others []*model.Player) {
			h.broadcast.ToPlayers(others, p.ID, depart.Write())
		},
		func(others []*model.Player) {
			h.broadcast.ToPlayers(others, p.ID, arrive.Write())
		})
	if err != nil {
		return nil
	}
	h.cheats.SetRoom(p.ID, constants.SpawnRoomID, constants.SpawnX, constants.SpawnY, time.Now())

	p.UpdateInventory(func(inv *model.Inventory) {
		inv.SetSlot(model.CategoryItem, slot, 0)
	})
	return nil
}

func (h *Handler) handleDiscard(c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseDiscardItem(body)
	if err != nil {
		return nil
	}
	if err := validate.ItemSlot(req.Slot); err != nil {
		return nil
	}
	if err := validate.Position(req.X, req.Y); err != nil {
		return nil
	}

	inv := p.Inventory()
	itemID := inv.Slot(model.CategoryItem, req.Slot)
	if itemID == 0 || !model.CanDiscard(itemID) {
		return nil
	}

	room, err := h.room(p)
	if err != nil {
		return nil
	}

	instanceID := h.world.NextDroppedID()
	room.AddDropped(&world.GroundItem{
		ID:        instanceID,
		ItemID:    itemID,
		X:         req.X,
		Y:         req.Y,
		DroppedBy: p.CharacterID,
		ExpiresAt: time.Now().Add(constants.DroppedItemTTLSecs * time.Second),
	})
	p.UpdateInventory(func(inv *model.Inventory) {
		inv.SetSlot(model.CategoryItem, req.Slot, 0)
	})

	pkt := serverpackets.DiscardItem{
		X: req.X, Y: req.Y, ItemID: itemID, InstanceID: uint16(instanceID),
	}
	h.broadcast.ToRoom(room, 0, pkt.Write())
	return nil
}

func (h *Handler) handleTakeItem(c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseTakeItem(body)
	if err != nil {
		return nil
	}
	room, err := h.room(p)
	if err != nil {
		return nil
	}

	// The low 16 bits travel on the wire, so match them against live drops.
	var item *world.GroundItem
	for _, gi := range room.DroppedItems() {
		if uint16(gi.ID) == req.InstanceID {
			item = gi
			break
		}
	}
	if item == nil {
		return nil
	}
	taken, ok := room.TakeDropped(item.ID)
	if !ok {
		return nil
	}

	var slot uint8
	p.UpdateInventory(func(inv *model.Inventory) {
		slot = inv.FreeSlot(model.CategoryItem)
		if slot != 0 {
			inv.SetSlot(model.CategoryItem, slot, taken.ItemID)
		}
	})
	if slot == 0 {
		room.AddDropped(taken)
		return nil
	}

	got := serverpackets.GetItem{Slot: slot, ItemID: taken.ItemID}
	return c.SendMessage(got.Write())
}
