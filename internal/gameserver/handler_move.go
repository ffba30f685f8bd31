package gameserver

import (
	"context"
	"time"

	"github.com/udisondev/slime2go/internal/anticheat"
	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/gameserver/clientpackets"
	"github.com/udisondev/slime2go/internal/gameserver/serverpackets"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/ratelimit"
	"github.com/udisondev/slime2go/internal/validate"
)

func (h *Handler) handleMove(ctx context.Context, c *Client, body []byte) error {
	if !h.allow(c, ratelimit.ActionMovement) {
		return nil
	}
	p := h.player(c)
	if p == nil {
		return nil
	}

	req, err := clientpackets.ParseMovePlayer(body)
	if err != nil {
		h.log.Debug("malformed movement", "client", c.IP(), "error", err)
		return nil
	}
	if err := validate.Direction(req.Direction); err != nil {
		h.log.Warn("invalid movement direction", "player", p.Username, "direction", req.Direction)
		return nil
	}

	now := time.Now()
	oldX, oldY := p.Position()
	newX, newY := oldX, oldY
	if req.HasX {
		newX = req.X
	}
	if req.HasY {
		newY = req.Y
	}

	if err := validate.Position(newX, newY); err != nil {
		h.log.Warn("movement out of bounds", "player", p.Username, "x", newX, "y", newY)
		return nil
	}

	onGround, canMove, lastMoveAt := p.MovementState()
	if !canMove {
		return nil
	}

	// Jumping and ducking need solid ground under the player.
	if (req.Direction == constants.DirJump || req.Direction == constants.DirDuck) && !onGround {
		h.log.Warn("airborne jump or duck dropped", "player", p.Username, "direction", req.Direction)
		return nil
	}

	// Cheap displacement check first, the full tracker after.
	if req.HasX || req.HasY {
		elapsed := now.Sub(lastMoveAt)
		if !lastMoveAt.IsZero() && !anticheat.ValidateDelta(oldX, oldY, newX, newY, elapsed) {
			h.log.Warn("implausible displacement dropped",
				"player", p.Username, "from_x", oldX, "from_y", oldY, "to_x", newX, "to_y", newY)
			return nil
		}

		verdict := h.cheats.CheckMovement(p.ID, newX, newY, p.RoomID(), now)
		switch verdict.Kind {
		case anticheat.Suspicious:
			h.log.Warn("suspicious movement", "player", p.Username, "reason", verdict.Reason)
		case anticheat.Cheating:
			h.log.Warn("movement cheat flagged", "player", p.Username, "reason", verdict.Reason,
				"flags", h.cheats.FlagCount(p.ID))
			if h.cheats.ShouldBan(p.ID) {
				h.banForCheating(ctx, c, p, verdict.Reason)
				return nil
			}
			if h.cheats.ShouldKick(p.ID) {
				h.log.Warn("kicking flagged player", "player", p.Username)
				c.MarkForDisconnection()
				return nil
			}
			return nil
		}
	}

	p.ApplyMovement(req.Direction, newX, newY, now)

	room, err := h.room(p)
	if err != nil {
		return nil
	}
	pkt := serverpackets.MovePlayer{
		PlayerID:  p.ID,
		Direction: req.Direction,
		HasX:      req.HasX,
		HasY:      req.HasY,
		X:         req.X,
		Y:         req.Y,
	}
	h.broadcast.ToRoom(room, p.ID, pkt.Write())
	return nil
}

// banForCheating writes a temporary account ban for a player that crossed
// the flag ceiling and closes the session.
func (h *Handler) banForCheating(ctx context.Context, c *Client, p *model.Player, reason string) {
	h.log.Warn("banning player for movement cheating", "player", p.Username, "reason", reason)
	expires := time.Now().Add(24 * time.Hour)
	if err := h.stores.Bans.Insert(ctx, model.BanKindAccount, p.Username, "movement cheating: "+reason, expires); err != nil {
		h.log.Error("ban insert failed", "player", p.Username, "error", err)
	}
	if err := h.stores.Accounts.SetBanned(ctx, p.AccountID, true); err != nil {
		h.log.Error("account ban flag failed", "account", p.AccountID, "error", err)
	}
	c.MarkForDisconnection()
}
