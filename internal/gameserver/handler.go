package gameserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/slime2go/internal/anticheat"
	"github.com/udisondev/slime2go/internal/config"
	"github.com/udisondev/slime2go/internal/db"
	"github.com/udisondev/slime2go/internal/gameserver/serverpackets"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/protocol"
	"github.com/udisondev/slime2go/internal/ratelimit"
	"github.com/udisondev/slime2go/internal/world"
)

// AccountStore is the account persistence the handlers need.
type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	Create(ctx context.Context, username, passwordHash, ip, device string) (int64, error)
	UpdateLastLogin(ctx context.Context, id int64, ip, device string) error
	SetBanned(ctx context.Context, id int64, banned bool) error
}

// CharacterStore is the character persistence the handlers need.
type CharacterStore interface {
	GetByAccountID(ctx context.Context, accountID int64) (*model.Character, error)
	GetByUsername(ctx context.Context, username string) (*model.Character, error)
	TransferBank(ctx context.Context, senderID int64, senderBank uint32, receiverID int64, amount uint32) (bool, error)
	Create(ctx context.Context, accountID int64, username string) (*model.Character, error)
	Save(ctx context.Context, ch *model.Character) error
	GetInventory(ctx context.Context, characterID int64) (*model.Inventory, error)
	SaveInventory(ctx context.Context, inv *model.Inventory) error
}

// BanStore answers and records bans.
type BanStore interface {
	IsBanned(ctx context.Context, kind model.BanKind, value string) (bool, error)
	Insert(ctx context.Context, kind model.BanKind, value, reason string, expiresAt time.Time) error
}

// ShopStore is the shop stock persistence.
type ShopStore interface {
	ItemsByRoom(ctx context.Context, roomID uint16) ([]db.ShopItem, error)
	Get(ctx context.Context, roomID uint16, slotID uint8) (*db.ShopItem, error)
	DecrementStock(ctx context.Context, id int64) (bool, error)
	RestoreStock(ctx context.Context, id int64) error
}

// ClanStore is the clan persistence.
type ClanStore interface {
	Create(ctx context.Context, name string, leaderID int64) (*model.Clan, error)
	GetByID(ctx context.Context, id int64) (*model.Clan, error)
	Members(ctx context.Context, clanID int64) ([]model.ClanMember, error)
	MemberCount(ctx context.Context, clanID int64) (int, error)
	AddMember(ctx context.Context, clanID, characterID int64) error
	RemoveMember(ctx context.Context, clanID, characterID int64) error
	Delete(ctx context.Context, clanID int64) error
}

// LedgerStore records wallet mutations.
type LedgerStore interface {
	Append(ctx context.Context, e model.LedgerEntry) error
}

// Stores bundles the persistence interfaces the handler depends on.
type Stores struct {
	Accounts   AccountStore
	Characters CharacterStore
	Bans       BanStore
	Shops      ShopStore
	Clans      ClanStore
	Ledger     LedgerStore
}

// Handler owns message dispatch: it parses client messages, runs the
// validation pipeline and mutates world state.
type Handler struct {
	log       *slog.Logger
	cfg       config.GameServer
	world     *world.World
	clients   *ClientManager
	broadcast *Broadcaster
	pool      *BytePool
	limiter   *ratelimit.Limiter
	cheats    *anticheat.Tracker
	stores    Stores
	invites   *inviteBook
	chats     *chatBook
}

// NewHandler wires a handler over the shared server state.
func NewHandler(log *slog.Logger, cfg config.GameServer, w *world.World, clients *ClientManager,
	pool *BytePool, limiter *ratelimit.Limiter, cheats *anticheat.Tracker, stores Stores) *Handler {

	return &Handler{
		log:       log,
		cfg:       cfg,
		world:     w,
		clients:   clients,
		broadcast: NewBroadcaster(clients, pool),
		pool:      pool,
		limiter:   limiter,
		cheats:    cheats,
		stores:    stores,
		invites:   newInviteBook(),
		chats:     newChatBook(),
	}
}

// Handle dispatches one decrypted payload (message id included). Handlers
// report only transport-level failures as errors; game-level rejections
// answer the client and return nil.
func (h *Handler) Handle(ctx context.Context, c *Client, payload []byte) error {
	if len(payload) < 2 {
		return fmt.Errorf("payload too short: %d", len(payload))
	}
	msg := protocol.MsgType(uint16(payload[0]) | uint16(payload[1])<<8)
	if !msg.Valid() {
		return fmt.Errorf("unknown message id %d", msg)
	}
	body := payload[2:]

	// Pre-auth state accepts only the handshake messages.
	if c.State() != StateInGame {
		switch msg {
		case protocol.MsgLogin:
			return h.handleLogin(ctx, c, body)
		case protocol.MsgRegister:
			return h.handleRegister(ctx, c, body)
		case protocol.MsgPing:
			return h.handlePing(c)
		default:
			return fmt.Errorf("message %d before login", msg)
		}
	}

	switch msg {
	case protocol.MsgPing:
		return h.handlePing(c)
	case protocol.MsgLogout:
		c.MarkForDisconnection()
		return nil
	case protocol.MsgLogin, protocol.MsgRegister:
		// Duplicate login on a live session.
		return nil
	case protocol.MsgMovePlayer:
		return h.handleMove(ctx, c, body)
	case protocol.MsgChat:
		return h.handleChat(c, body)
	case protocol.MsgPlayerTyping:
		return h.handleTyping(c)
	case protocol.MsgNewPlayer:
		// Position acknowledgment of a roster announcement, nothing to do.
		return nil
	case protocol.MsgPoint:
		return h.handlePoint(c, body)
	case protocol.MsgEmote:
		return h.handleEmote(c, body)
	case protocol.MsgAction:
		return h.handleAction(c, body)
	case protocol.MsgChangeOutfit:
		return h.handleChangeOutfit(c, body, protocol.MsgChangeOutfit)
	case protocol.MsgChangeAcc1:
		return h.handleChangeOutfit(c, body, protocol.MsgChangeAcc1)
	case protocol.MsgChangeAcc2:
		return h.handleChangeOutfit(c, body, protocol.MsgChangeAcc2)
	case protocol.MsgWarp, protocol.MsgChangeRoom:
		return h.handleWarp(ctx, c, body)
	case protocol.MsgUseItem:
		return h.handleUseItem(c, body)
	case protocol.MsgDiscardItem:
		return h.handleDiscard(c, body)
	case protocol.MsgDiscardedTake:
		return h.handleTakeItem(c, body)
	case protocol.MsgRoomShopInfo:
		return h.handleShopInfo(ctx, c)
	case protocol.MsgShopBuy:
		return h.handleShopBuy(ctx, c, body)
	case protocol.MsgBankProcess:
		return h.handleBank(ctx, c, body)
	case protocol.MsgRequestStatus:
		return h.handleRequestStatus(c, body)
	case protocol.MsgCollectSelf:
		return h.handleCollect(c, body)
	case protocol.MsgPlantSpotUsed:
		return h.handlePlant(c, body)
	case protocol.MsgPlantGetFruit:
		return h.handleHarvest(c, body)
	case protocol.MsgClanCreate:
		return h.handleClanCreate(ctx, c, body)
	case protocol.MsgClanDissolve:
		return h.handleClanDissolve(ctx, c)
	case protocol.MsgClanInvite:
		return h.handleClanInviteResponse(ctx, c, body)
	case protocol.MsgClanLeave:
		return h.handleClanLeave(ctx, c)
	case protocol.MsgClanInfo:
		return h.handleClanInfo(ctx, c, body)
	case protocol.MsgClanAdmin:
		return h.handleClanAdmin(ctx, c, body)
	default:
		h.log.Debug("unhandled message", "msg", uint16(msg), "client", c.IP())
		return nil
	}
}

func (h *Handler) handlePing(c *Client) error {
	pkt := serverpackets.Ping{}
	return c.SendMessage(pkt.Write())
}

// limitKey picks the rate limit key: player id once in game, remote address
// before.
func (h *Handler) limitKey(c *Client) string {
	if p := c.Player(); p != nil {
		return fmt.Sprintf("player:%d", p.ID)
	}
	return "addr:" + c.IP()
}

// allow runs the rate limiter for one action and applies the escalation
// ladder. A false return means the message is dropped.
func (h *Handler) allow(c *Client, action ratelimit.Action) bool {
	key := h.limitKey(c)
	res := h.limiter.Check(key, action, time.Now())
	if res.Outcome == ratelimit.Allowed {
		return true
	}

	h.log.Warn("rate limit hit",
		"key", key, "action", action.String(),
		"violations", res.Violations, "retry_after", res.RetryAfter)

	if h.limiter.ShouldBan(key) {
		h.tempBanForFlooding(c)
		return false
	}
	if h.limiter.ShouldKick(key) {
		h.log.Warn("rate limit kick", "key", key, "client", c.IP())
		c.MarkForDisconnection()
	}
	return false
}

// tempBanForFlooding records a short IP ban for a client that kept tripping
// the limiter after being kicked.
func (h *Handler) tempBanForFlooding(c *Client) {
	h.log.Warn("rate limit ban", "client", c.IP())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	expires := time.Now().Add(time.Hour)
	if err := h.stores.Bans.Insert(ctx, model.BanKindIP, c.IP(), "rate limit flooding", expires); err != nil {
		h.log.Error("ban insert failed", "client", c.IP(), "error", err)
	}
	c.MarkForDisconnection()
}

// player returns the in-game player of a client, or nil when the session is
// in teardown.
func (h *Handler) player(c *Client) *model.Player {
	p := c.Player()
	if p == nil {
		h.log.Debug("message from session without player", "client", c.IP())
	}
	return p
}

// room resolves the current room of a player.
func (h *Handler) room(p *model.Player) (*world.Room, error) {
	return h.world.Room(p.RoomID())
}
