package gameserver

import (
	"strings"
	"time"

	"github.com/udisondev/slime2go/internal/gameserver/clientpackets"
	"github.com/udisondev/slime2go/internal/gameserver/serverpackets"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/protocol"
	"github.com/udisondev/slime2go/internal/ratelimit"
	"github.com/udisondev/slime2go/internal/validate"
)

func (h *Handler) handleChat(c *Client, body []byte) error {
	if !h.allow(c, ratelimit.ActionChat) {
		return nil
	}
	p := h.player(c)
	if p == nil {
		return nil
	}

	req, err := clientpackets.ParseChat(body)
	if err != nil {
		h.log.Debug("malformed chat", "client", c.IP(), "error", err)
		return nil
	}
	if err := validate.ChatMessage(req.Message); err != nil {
		return nil
	}
	message := filterChat(validate.SanitizeChat(req.Message))
	if strings.HasPrefix(message, "/") && !p.IsModerator {
		h.log.Warn("command from non-moderator", "player", p.Username, "message", message)
		return nil
	}
	if !h.chats.allow(p.ID, message, time.Now()) {
		return nil
	}

	room, err := h.room(p)
	if err != nil {
		return nil
	}

	h.log.Info("chat", "player", p.Username, "room", room.ID, "message", message)

	pkt := serverpackets.Chat{PlayerID: p.ID, Message: message}
	h.broadcast.ToRoom(room, 0, pkt.Write())
	return nil
}

func (h *Handler) handleTyping(c *Client) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	room, err := h.room(p)
	if err != nil {
		return nil
	}
	pkt := serverpackets.PlayerTyping{PlayerID: p.ID}
	h.broadcast.ToRoom(room, p.ID, pkt.Write())
	return nil
}

func (h *Handler) handleEmote(c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseEmote(body)
	if err != nil {
		return nil
	}
	room, err := h.room(p)
	if err != nil {
		return nil
	}
	pkt := serverpackets.Emote{PlayerID: p.ID, EmoteID: req.EmoteID}
	h.broadcast.ToRoom(room, p.ID, pkt.Write())
	return nil
}

func (h *Handler) handleAction(c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseAction(body)
	if err != nil {
		return nil
	}
	room, err := h.room(p)
	if err != nil {
		return nil
	}
	pkt := serverpackets.Action{PlayerID: p.ID, ActionID: req.ActionID}
	h.broadcast.ToRoom(room, p.ID, pkt.Write())
	return nil
}

// handleChangeOutfit serves all three appearance anchors; msg picks which.
func (h *Handler) handleChangeOutfit(c *Client, body []byte, msg protocol.MsgType) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseChangeOutfit(body)
	if err != nil {
		return nil
	}
	if err := validate.ItemSlot(req.Slot); err != nil {
		h.log.Warn("invalid appearance slot", "player", p.Username, "slot", req.Slot)
		return nil
	}

	inv := p.Inventory()
	var spriteID uint16
	switch msg {
	case protocol.MsgChangeOutfit:
		spriteID = inv.Slot(model.CategoryOutfit, req.Slot)
		if spriteID == 0 {
			return nil
		}
		p.SetBody(spriteID)
	case protocol.MsgChangeAcc1:
		spriteID = inv.Slot(model.CategoryAccessory, req.Slot)
		p.SetAccessory(1, spriteID)
	case protocol.MsgChangeAcc2:
		spriteID = inv.Slot(model.CategoryAccessory, req.Slot)
		p.SetAccessory(2, spriteID)
	}

	room, err := h.room(p)
	if err != nil {
		return nil
	}
	pkt := serverpackets.ChangeOutfit{Msg: msg, PlayerID: p.ID, SpriteID: spriteID}
	h.broadcast.ToRoom(room, p.ID, pkt.Write())
	return nil
}
