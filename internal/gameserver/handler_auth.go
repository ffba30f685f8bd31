package gameserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/db"
	"github.com/udisondev/slime2go/internal/gameserver/clientpackets"
	"github.com/udisondev/slime2go/internal/gameserver/serverpackets"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/ratelimit"
	"github.com/udisondev/slime2go/internal/validate"
	"github.com/udisondev/slime2go/internal/world"
)

func (h *Handler) loginFail(c *Client, code uint8) error {
	pkt := serverpackets.LoginFailure{Code: code}
	return c.SendMessage(pkt.Write())
}

func (h *Handler) handleLogin(ctx context.Context, c *Client, body []byte) error {
	if !h.allow(c, ratelimit.ActionLogin) {
		return h.loginFail(c, LoginVersionMismatch)
	}

	req, err := clientpackets.ParseLogin(body)
	if err != nil {
		h.log.Warn("malformed login request", "client", c.IP(), "error", err)
		return h.loginFail(c, LoginVersionMismatch)
	}
	if req.Version != constants.ProtocolVersion {
		h.log.Debug("client version mismatch", "client", c.IP(), "version", req.Version)
		return h.loginFail(c, LoginVersionMismatch)
	}
	if err := validate.Username(req.Username); err != nil {
		return h.loginFail(c, LoginNoAccount)
	}
	if err := validate.LoginPassword(req.Password); err != nil {
		return h.loginFail(c, LoginWrongPassword)
	}

	if banned, err := h.stores.Bans.IsBanned(ctx, model.BanKindIP, c.IP()); err == nil && banned {
		h.log.Warn("login from banned ip", "client", c.IP())
		return h.loginFail(c, LoginIPBanned)
	}
	if banned, err := h.stores.Bans.IsBanned(ctx, model.BanKindDevice, req.Device); err == nil && banned {
		h.log.Warn("login from banned device", "client", c.IP(), "device", req.Device)
		return h.loginFail(c, LoginDeviceBanned)
	}

	acc, err := h.stores.Accounts.GetByUsername(ctx, req.Username)
	if err != nil {
		h.log.Error("account lookup failed", "username", req.Username, "error", err)
		return h.loginFail(c, LoginNoAccount)
	}
	if acc == nil {
		return h.loginFail(c, LoginNoAccount)
	}
	if acc.IsBanned {
		h.log.Warn("login on banned account", "username", req.Username)
		return h.loginFail(c, LoginAccountBanned)
	}
	if !db.VerifyPassword(acc.PasswordHash, req.Password) {
		return h.loginFail(c, LoginWrongPassword)
	}

	// Logins for one account serialize here. A second login displaces the
	// live session instead of being refused: the old client gets a
	// server-close notice and a full teardown before the new one spawns.
	h.clients.LockAccount(acc.ID)
	defer h.clients.UnlockAccount(acc.ID)

	if old, ok := h.clients.ByAccount(acc.ID); ok && old != c {
		h.log.Info("displacing live session", "account", acc.Username, "old_client", old.IP(), "new_client", c.IP())
		h.evictSession(ctx, old)
	}

	ch, err := h.stores.Characters.GetByAccountID(ctx, acc.ID)
	if err != nil {
		h.log.Error("character lookup failed", "account", acc.ID, "error", err)
		return h.loginFail(c, LoginNoAccount)
	}
	if ch == nil {
		if ch, err = h.stores.Characters.Create(ctx, acc.ID, acc.Username); err != nil {
			h.log.Error("character create failed", "account", acc.ID, "error", err)
			return h.loginFail(c, LoginNoAccount)
		}
	}
	inv, err := h.stores.Characters.GetInventory(ctx, ch.ID)
	if err != nil {
		h.log.Error("inventory load failed", "character", ch.ID, "error", err)
		return h.loginFail(c, LoginNoAccount)
	}

	p := model.NewPlayer(0, ch, inv)
	h.world.AssignPlayerID(p)

	if err := h.spawn(c, p); err != nil {
		h.world.RemovePlayer(p.ID)
		h.log.Error("spawn failed", "username", p.Username, "error", err)
		return h.loginFail(c, LoginNoAccount)
	}

	c.SetIdentity(acc.ID, req.Device, p)
	h.clients.Install(acc.ID, p.ID, c)
	c.SetState(StateInGame)

	x, y := p.Position()
	h.cheats.Init(p.ID, x, y, p.RoomID(), time.Now())
	if err := h.stores.Accounts.UpdateLastLogin(ctx, acc.ID, c.IP(), req.Device); err != nil {
		h.log.Warn("last login update failed", "account", acc.ID, "error", err)
	}

	success := serverpackets.NewLoginSuccess(p, h.cfg.MOTD, time.Now())
	if err := c.SendMessage(success.Write()); err != nil {
		return fmt.Errorf("sending login success: %w", err)
	}

	room, err := h.room(p)
	if err == nil {
		h.sendRoomState(context.WithoutCancel(ctx), c, room)
	}

	h.log.Info("player logged in",
		"username", p.Username, "player_id", p.ID,
		"room", p.RoomID(), "online", h.world.OnlineCount())
	return nil
}

// spawn places a fresh player into their persisted room, falling back to the
// spawn room when it is full or gone, and announces them to the occupants.
func (h *Handler) spawn(c *Client, p *model.Player) error {
	roomID := p.RoomID()
	if roomID > constants.MaxRoomID {
		roomID = constants.SpawnRoomID
		p.SetRoomID(roomID, constants.SpawnX, constants.SpawnY)
	}
	room, err := h.world.Room(roomID)
	if err != nil {
		return err
	}

	join := func(others []*model.Player) {
		h.announceJoin(c, p, others)
	}
	if err := room.Join(p, join); err != nil {
		if !errors.Is(err, world.ErrRoomFull) || roomID == constants.SpawnRoomID {
			return err
		}
		p.SetRoomID(constants.SpawnRoomID, constants.SpawnX, constants.SpawnY)
		spawnRoom, err := h.world.Room(constants.SpawnRoomID)
		if err != nil {
			return err
		}
		return spawnRoom.Join(p, join)
	}
	return nil
}

// announceJoin broadcasts the newcomer to the room and the room's occupants
// back to the newcomer.
func (h *Handler) announceJoin(c *Client, p *model.Player, others []*model.Player) {
	if len(others) == 0 {
		return
	}
	h.broadcast.ToPlayers(others, p.ID, serverpackets.NewNewPlayer(p).WriteCase1())
	for _, other := range others {
		_ = c.SendMessage(serverpackets.NewNewPlayer(other).WriteCase2())
	}
}

// sendRoomState pushes the shop stock, collectibles and plant spots of a
// room to one client. Called on login and after every warp.
func (h *Handler) sendRoomState(ctx context.Context, c *Client, room *world.Room) {
	items, err := h.stores.Shops.ItemsByRoom(ctx, room.ID)
	if err != nil {
		h.log.Warn("shop stock load failed", "room", room.ID, "error", err)
	} else if len(items) > 0 {
		_ = c.SendMessage(shopInfoPacket(items).Write())
	}

	var available []*world.Collectible
	for _, col := range room.Collectibles() {
		if col.Available {
			available = append(available, col)
		}
	}
	if len(available) > 0 {
		info := serverpackets.CollectInfo{Collectibles: available}
		_ = c.SendMessage(info.Write())
	}

	for _, spot := range room.PlantSpots() {
		if spot.Stage == world.PlantStageFree {
			continue
		}
		ownerPID := uint16(0)
		if owner, ok := h.world.PlayerByCharacter(spot.OwnerID); ok {
			ownerPID = owner.ID
		}
		_ = c.SendMessage(serverpackets.NewPlantSpotUsed(spot, ownerPID).Write())
		if spot.Stage == world.PlantStageFruit {
			fruit := serverpackets.PlantHasFruit{
				SpotID: spot.ID,
				Fruit1: spot.SeedID,
				Fruit2: spot.SeedID,
				Fruit3: spot.SeedID,
			}
			_ = c.SendMessage(fruit.Write())
		}
	}

	for _, item := range room.DroppedItems() {
		drop := serverpackets.DiscardItem{
			X:          item.X,
			Y:          item.Y,
			ItemID:     item.ItemID,
			InstanceID: uint16(item.ID),
		}
		_ = c.SendMessage(drop.Write())
	}
}

func (h *Handler) handleRegister(ctx context.Context, c *Client, body []byte) error {
	registerFail := func(code uint8) error {
		pkt := serverpackets.RegisterResult{Code: code}
		return c.SendMessage(pkt.Write())
	}

	if !h.allow(c, ratelimit.ActionRegister) {
		return registerFail(RegisterExists)
	}

	req, err := clientpackets.ParseRegister(body)
	if err != nil {
		h.log.Warn("malformed register request", "client", c.IP(), "error", err)
		return registerFail(RegisterExists)
	}
	if err := validate.Username(req.Username); err != nil {
		return registerFail(RegisterExists)
	}
	if err := validate.Password(req.Password); err != nil {
		return registerFail(RegisterExists)
	}
	if err := validate.DeviceID(req.Device); err != nil {
		return registerFail(RegisterExists)
	}

	if banned, err := h.stores.Bans.IsBanned(ctx, model.BanKindIP, c.IP()); err == nil && banned {
		return registerFail(RegisterIPBanned)
	}
	if banned, err := h.stores.Bans.IsBanned(ctx, model.BanKindDevice, req.Device); err == nil && banned {
		return registerFail(RegisterDeviceBanned)
	}

	hash, err := db.HashPassword(req.Password)
	if err != nil {
		h.log.Error("password hash failed", "error", err)
		return registerFail(RegisterExists)
	}

	if _, err := h.stores.Accounts.Create(ctx, req.Username, hash, c.IP(), req.Device); err != nil {
		if errors.Is(err, db.ErrUsernameTaken) {
			return registerFail(RegisterExists)
		}
		h.log.Error("account create failed", "username", req.Username, "error", err)
		return registerFail(RegisterExists)
	}

	h.log.Info("account registered", "username", req.Username, "client", c.IP())
	return registerFail(RegisterSuccess)
}

// evictSession tears a displaced session down: server-close notice, world
// exit with a leave broadcast, state flush, then close.
func (h *Handler) evictSession(ctx context.Context, old *Client) {
	notice := serverpackets.ServerClose{}
	_ = old.SendMessage(notice.Write())
	old.MarkForDisconnection()
	h.Cleanup(ctx, old)
	_ = old.Close()
}

// Cleanup removes a session from the world and flushes its state. Idempotent:
// the read loop calls it on every exit path, eviction calls it early.
func (h *Handler) Cleanup(ctx context.Context, c *Client) {
	p := c.Player()
	if p == nil {
		h.clients.Remove(c)
		return
	}

	if room, err := h.world.Room(p.RoomID()); err == nil {
		room.Leave(p, func(others []*model.Player) {
			left := serverpackets.PlayerLeft{PlayerID: p.ID}
			h.broadcast.ToPlayers(others, 0, left.Write())
		})
	}
	h.world.RemovePlayer(p.ID)
	h.cheats.Remove(p.ID)
	h.limiter.Forget(h.limitKey(c))
	h.invites.forget(p.ID)
	h.chats.forget(p.ID)
	h.clients.Remove(c)

	h.saveCharacter(ctx, p)

	h.log.Info("player left",
		"username", p.Username, "player_id", p.ID, "online", h.world.OnlineCount())
}

// saveCharacter flushes runtime state into the character row and inventory.
func (h *Handler) saveCharacter(ctx context.Context, p *model.Player) {
	snap := p.Snapshot()
	if err := h.stores.Characters.Save(ctx, &snap); err != nil {
		h.log.Error("character save failed", "character", snap.ID, "error", err)
	}
	inv := p.Inventory()
	inv.CharacterID = p.CharacterID
	if err := h.stores.Characters.SaveInventory(ctx, &inv); err != nil {
		h.log.Error("inventory save failed", "character", snap.ID, "error", err)
	}
}

// SaveAll flushes every online player. Used by the periodic save loop and at
// shutdown.
func (h *Handler) SaveAll(ctx context.Context) {
	h.clients.ForEach(func(c *Client) {
		if p := c.Player(); p != nil {
			h.saveCharacter(ctx, p)
		}
	})
}
