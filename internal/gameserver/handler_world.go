package gameserver

import (
	"context"
	"errors"
	"time"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/gameserver/clientpackets"
	"github.com/udisondev/slime2go/internal/gameserver/serverpackets"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/ratelimit"
	"github.com/udisondev/slime2go/internal/validate"
	"github.com/udisondev/slime2go/internal/world"
)

func (h *Handler) handlePoint(c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParsePoint(body)
	if err != nil {
		return nil
	}
	if _, err := p.Credit(1, "point pickup"); err != nil {
		if !errors.Is(err, model.ErrPointsCapped) {
			return nil
		}
		// capped players still trigger the animation for everyone else
	}
	room, err := h.room(p)
	if err != nil {
		return nil
	}
	pkt := serverpackets.Point{Index: req.Index}
	h.broadcast.ToRoom(room, p.ID, pkt.Write())
	return nil
}

func (h *Handler) handleWarp(ctx context.Context, c *Client, body []byte) error {
	if !h.allow(c, ratelimit.ActionWarp) {
		return nil
	}
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseWarp(body)
	if err != nil {
		h.log.Debug("malformed warp", "client", c.IP(), "error", err)
		return nil
	}
	if err := validate.RoomID(req.RoomID); err != nil {
		h.log.Warn("warp to invalid room", "player", p.Username, "room", req.RoomID)
		return nil
	}
	if err := validate.Position(req.X, req.Y); err != nil {
		h.log.Warn("warp to invalid position", "player", p.Username, "x", req.X, "y", req.Y)
		return nil
	}

	h.cheats.AllowWarp(p.ID)

	depart := serverpackets.WarpDepart{PlayerID: p.ID}
	arrive := serverpackets.WarpArrive{PlayerID: p.ID, X: req.X, Y: req.Y}

	var joined []*model.Player
	err = h.world.MovePlayer(p, req.RoomID, req.X, req.Y,
		func(others []*model.Player) {
			h.broadcast.ToPlayers(others, p.ID, depart.Write())
		},
		func(others []*model.Player) {
			joined = others
			h.broadcast.ToPlayers(others, p.ID, arrive.Write())
		})
	if err != nil {
		h.log.Debug("warp rejected", "player", p.Username, "room", req.RoomID, "error", err)
		return nil
	}

	h.cheats.SetRoom(p.ID, req.RoomID, req.X, req.Y, time.Now())

	// The warper rebuilds the room from scratch: a flat roster entry per
	// occupant, then the shop and everything lying around.
	for _, other := range joined {
		if err := c.SendMessage(serverpackets.NewNewPlayer(other).WriteRoster()); err != nil {
			return err
		}
	}

	room, err := h.world.Room(req.RoomID)
	if err != nil {
		return nil
	}
	h.sendRoomState(ctx, c, room)

	h.log.Info("player warped", "player", p.Username, "room", req.RoomID, "x", req.X, "y", req.Y)
	return nil
}

func (h *Handler) handleCollect(c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseCollectSelf(body)
	if err != nil {
		return nil
	}
	room, err := h.room(p)
	if err != nil {
		return nil
	}

	col, ok := room.TakeCollectible(uint16(req.ColID), time.Now(),
		constants.CollectibleRespawnSecs*time.Second)
	if !ok {
		return nil
	}

	var slot uint8
	p.UpdateInventory(func(inv *model.Inventory) {
		slot = inv.FreeSlot(model.CategoryItem)
		if slot != 0 {
			inv.SetSlot(model.CategoryItem, slot, col.ItemID)
		}
	})
	if slot == 0 {
		// inventory full, put the collectible back
		room.AddCollectible(&world.Collectible{
			ID: col.ID, ItemID: col.ItemID, X: col.X, Y: col.Y, Available: true,
		})
		return nil
	}

	got := serverpackets.GetItem{Slot: slot, ItemID: col.ItemID}
	if err := c.SendMessage(got.Write()); err != nil {
		return err
	}

	taken := serverpackets.CollectTaken{ColID: req.ColID}
	h.broadcast.ToRoom(room, p.ID, taken.Write())
	return nil
}

func (h *Handler) handlePlant(c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParsePlantSet(body)
	if err != nil {
		return nil
	}
	if err := validate.ItemSlot(req.SeedSlot); err != nil {
		return nil
	}

	inv := p.Inventory()
	seedID := inv.Slot(model.CategoryItem, req.SeedSlot)
	if model.KindOf(seedID) != model.ItemSeed {
		h.log.Warn("planting a non-seed", "player", p.Username, "item", seedID)
		return nil
	}

	room, err := h.room(p)
	if err != nil {
		return nil
	}

	spot, err := room.Plant(req.SpotID, p.CharacterID, seedID, time.Now(), h.cfg.PlantStageTime)
	if err != nil {
		h.log.Debug("plant rejected", "player", p.Username, "spot", req.SpotID, "error", err)
		return nil
	}

	p.UpdateInventory(func(inv *model.Inventory) {
		inv.SetSlot(model.CategoryItem, req.SeedSlot, 0)
	})
	p.IncTreesPlanted()

	if err := c.SendMessage((&serverpackets.TreePlanted{}).Write()); err != nil {
		return err
	}
	h.broadcast.ToRoom(room, 0, serverpackets.NewPlantSpotUsed(spot, p.ID).Write())

	h.log.Info("tree planted", "player", p.Username, "room", room.ID, "spot", req.SpotID, "seed", seedID)
	return nil
}

func (h *Handler) handleHarvest(c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParsePlantTakeFruit(body)
	if err != nil {
		return nil
	}
	if req.FruitSlot < 1 || req.FruitSlot > 3 {
		return nil
	}

	room, err := h.room(p)
	if err != nil {
		return nil
	}

	var slot uint8
	p.UpdateInventory(func(inv *model.Inventory) {
		slot = inv.FreeSlot(model.CategoryItem)
	})
	if slot == 0 {
		return nil
	}

	spot, err := room.Harvest(req.SpotID, p.CharacterID)
	if err != nil {
		h.log.Debug("harvest rejected", "player", p.Username, "spot", req.SpotID, "error", err)
		return nil
	}

	fruit := model.FruitOf(spot.SeedID, req.FruitSlot)
	p.UpdateInventory(func(inv *model.Inventory) {
		inv.SetSlot(model.CategoryItem, slot, fruit)
	})

	got := serverpackets.GetItem{Slot: slot, ItemID: fruit}
	if err := c.SendMessage(got.Write()); err != nil {
		return err
	}

	taken := serverpackets.PlantFruitTaken{SpotID: req.SpotID, FruitSlot: req.FruitSlot}
	h.broadcast.ToRoom(room, p.ID, taken.Write())
	freed := serverpackets.PlantSpotFree{SpotID: req.SpotID}
	h.broadcast.ToRoom(room, 0, freed.Write())
	return nil
}
