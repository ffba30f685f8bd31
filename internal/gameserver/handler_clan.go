package gameserver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/db"
	"github.com/udisondev/slime2go/internal/gameserver/clientpackets"
	"github.com/udisondev/slime2go/internal/gameserver/serverpackets"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/validate"
)

// inviteCooldown throttles repeat invitations to the same target.
const inviteCooldown = 15 * time.Second

type pendingInvite struct {
	clanID     int64
	inviterPID uint16
	sentAt     time.Time
}

// inviteBook tracks outstanding clan invitations by target player id.
type inviteBook struct {
	mu      sync.Mutex
	pending map[uint16]pendingInvite
}

func newInviteBook() *inviteBook {
	return &inviteBook{pending: make(map[uint16]pendingInvite)}
}

// offer records an invitation unless the target was invited too recently.
func (b *inviteBook) offer(target uint16, clanID int64, inviterPID uint16, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.pending[target]; ok && now.Sub(prev.sentAt) < inviteCooldown {
		return false
	}
	b.pending[target] = pendingInvite{clanID: clanID, inviterPID: inviterPID, sentAt: now}
	return true
}

// take removes and returns the pending invitation of a target.
func (b *inviteBook) take(target uint16) (pendingInvite, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	inv, ok := b.pending[target]
	if ok {
		delete(b.pending, target)
	}
	return inv, ok
}

func (b *inviteBook) forget(target uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pending, target)
}

func (h *Handler) handleClanCreate(ctx context.Context, c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseClanCreate(body)
	if err != nil {
		return nil
	}
	if p.ClanID() != 0 {
		return nil
	}

	createFail := func() error {
		pkt := serverpackets.ClanCreateFail{Code: 1}
		return c.SendMessage(pkt.Write())
	}

	if err := validate.ClanName(req.Name); err != nil {
		h.log.Debug("bad clan name", "player", p.Username, "name", req.Name, "error", err)
		return createFail()
	}

	var proofs map[uint8]uint16
	p.UpdateInventory(func(inv *model.Inventory) {
		proofs, _ = takeClanProofs(inv)
	})
	if proofs == nil {
		h.log.Debug("clan founding without proofs", "player", p.Username)
		return nil
	}

	entry, err := p.Debit(constants.ClanCreationCost, "clan founding")
	if err != nil {
		restoreClanProofs(p, proofs)
		h.log.Debug("clan founding unaffordable", "player", p.Username, "error", err)
		return nil
	}

	clan, err := h.stores.Clans.Create(ctx, req.Name, p.CharacterID)
	if err != nil {
		restoreClanProofs(p, proofs)
		if _, cerr := p.Credit(constants.ClanCreationCost, "clan founding refund"); cerr != nil {
			h.log.Error("refunding clan founding", "player", p.Username, "error", cerr)
		}
		if errors.Is(err, db.ErrClanNameTaken) {
			return createFail()
		}
		h.log.Error("creating clan", "player", p.Username, "error", err)
		return nil
	}
	h.appendLedger(ctx, entry)

	p.SetClanID(clan.ID)
	h.log.Info("clan founded", "player", p.Username, "clan", clan.Name)

	joined := serverpackets.ClanSelfJoined{ClanID: uint16(clan.ID), IsLeader: true}
	if err := c.SendMessage(joined.Write()); err != nil {
		return err
	}
	h.broadcastClanTag(p.ID, uint16(clan.ID))
	return nil
}

func (h *Handler) handleClanDissolve(ctx context.Context, c *Client) error {
	p := h.player(c)
	if p == nil || p.ClanID() == 0 {
		return nil
	}
	clan, err := h.stores.Clans.GetByID(ctx, p.ClanID())
	if err != nil || clan == nil {
		return nil
	}
	if clan.LeaderID != p.CharacterID {
		h.log.Warn("non-leader dissolving clan", "player", p.Username, "clan", clan.Name)
		return nil
	}

	members, err := h.stores.Clans.Members(ctx, clan.ID)
	if err != nil {
		h.log.Error("loading clan members", "clan", clan.ID, "error", err)
		return nil
	}
	if err := h.stores.Clans.Delete(ctx, clan.ID); err != nil {
		h.log.Error("deleting clan", "clan", clan.ID, "error", err)
		return nil
	}

	for _, m := range members {
		mp, ok := h.world.PlayerByCharacter(m.CharacterID)
		if !ok {
			continue
		}
		mp.SetClanID(0)
		if mc, ok := h.clients.ByPlayer(mp.ID); ok {
			_ = mc.SendMessage((&serverpackets.ClanLeft{}).Write())
		}
		h.broadcastClanTag(mp.ID, 0)
	}

	h.log.Info("clan dissolved", "player", p.Username, "clan", clan.Name)
	return nil
}

func (h *Handler) handleClanAdmin(ctx context.Context, c *Client, body []byte) error {
	p := h.player(c)
	if p == nil || p.ClanID() == 0 {
		return nil
	}
	req, err := clientpackets.ParseClanAdmin(body)
	if err != nil {
		return nil
	}
	clan, err := h.stores.Clans.GetByID(ctx, p.ClanID())
	if err != nil || clan == nil {
		return nil
	}

	switch req.Action {
	case clientpackets.ClanAdminKick:
		return h.clanKick(ctx, p, clan, req.MemberSlot)
	case clientpackets.ClanAdminInvite:
		return h.clanInvite(ctx, p, clan, req.TargetPID)
	}
	return nil
}

func (h *Handler) clanKick(ctx context.Context, p *model.Player, clan *model.Clan, memberSlot uint8) error {
	if clan.LeaderID != p.CharacterID {
		return nil
	}
	members, err := h.stores.Clans.Members(ctx, clan.ID)
	if err != nil {
		return nil
	}
	if int(memberSlot) >= len(members) {
		return nil
	}
	target := members[memberSlot]
	if target.CharacterID == clan.LeaderID {
		return nil
	}
	if err := h.stores.Clans.RemoveMember(ctx, clan.ID, target.CharacterID); err != nil {
		h.log.Error("kicking clan member", "clan", clan.ID, "member", target.Username, "error", err)
		return nil
	}

	if tp, ok := h.world.PlayerByCharacter(target.CharacterID); ok {
		tp.SetClanID(0)
		if tc, ok := h.clients.ByPlayer(tp.ID); ok {
			_ = tc.SendMessage((&serverpackets.ClanLeft{}).Write())
		}
		h.broadcastClanTag(tp.ID, 0)
	}
	h.log.Info("clan member kicked", "clan", clan.Name, "member", target.Username, "by", p.Username)
	return nil
}

func (h *Handler) clanInvite(ctx context.Context, p *model.Player, clan *model.Clan, targetPID uint16) error {
	target, ok := h.world.Player(targetPID)
	if !ok || target.ClanID() != 0 || target.ID == p.ID {
		return nil
	}
	count, err := h.stores.Clans.MemberCount(ctx, clan.ID)
	if err != nil || count >= constants.MaxClanMembers {
		return nil
	}
	if !h.invites.offer(target.ID, clan.ID, p.ID, time.Now()) {
		h.log.Debug("invite throttled", "target", target.Username, "clan", clan.Name)
		return nil
	}
	tc, ok := h.clients.ByPlayer(target.ID)
	if !ok {
		h.invites.forget(target.ID)
		return nil
	}
	offer := serverpackets.ClanInviteOffer{InviterPID: p.ID, ClanName: clan.Name}
	return tc.SendMessage(offer.Write())
}

func (h *Handler) handleClanInviteResponse(ctx context.Context, c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseClanInviteResponse(body)
	if err != nil {
		return nil
	}
	inv, ok := h.invites.take(p.ID)
	if !ok {
		return nil
	}
	if req.Response != clientpackets.ClanInviteAccept {
		return nil
	}
	if p.ClanID() != 0 {
		return nil
	}

	count, err := h.stores.Clans.MemberCount(ctx, inv.clanID)
	if err != nil || count >= constants.MaxClanMembers {
		return nil
	}
	if err := h.stores.Clans.AddMember(ctx, inv.clanID, p.CharacterID); err != nil {
		h.log.Error("adding clan member", "clan", inv.clanID, "player", p.Username, "error", err)
		return nil
	}
	p.SetClanID(inv.clanID)

	joined := serverpackets.ClanSelfJoined{ClanID: uint16(inv.clanID)}
	if err := c.SendMessage(joined.Write()); err != nil {
		return err
	}
	h.broadcastClanTag(p.ID, uint16(inv.clanID))
	h.log.Info("clan member joined", "clan", inv.clanID, "player", p.Username)
	return nil
}

func (h *Handler) handleClanLeave(ctx context.Context, c *Client) error {
	p := h.player(c)
	if p == nil || p.ClanID() == 0 {
		return nil
	}
	clan, err := h.stores.Clans.GetByID(ctx, p.ClanID())
	if err != nil || clan == nil {
		return nil
	}
	if clan.LeaderID == p.CharacterID {
		// leaders dissolve, they do not walk away
		return nil
	}
	if err := h.stores.Clans.RemoveMember(ctx, clan.ID, p.CharacterID); err != nil {
		h.log.Error("removing clan member", "clan", clan.ID, "player", p.Username, "error", err)
		return nil
	}
	p.SetClanID(0)

	if err := c.SendMessage((&serverpackets.ClanLeft{}).Write()); err != nil {
		return err
	}
	h.broadcastClanTag(p.ID, 0)
	h.log.Info("clan member left", "clan", clan.Name, "player", p.Username)
	return nil
}

func (h *Handler) handleClanInfo(ctx context.Context, c *Client, body []byte) error {
	p := h.player(c)
	if p == nil || p.ClanID() == 0 {
		return nil
	}
	req, err := clientpackets.ParseClanInfoRequest(body)
	if err != nil {
		return nil
	}
	if req.Type != clientpackets.ClanInfoMembers {
		return nil
	}
	clan, err := h.stores.Clans.GetByID(ctx, p.ClanID())
	if err != nil || clan == nil {
		return nil
	}
	members, err := h.stores.Clans.Members(ctx, clan.ID)
	if err != nil {
		h.log.Error("loading clan members", "clan", clan.ID, "error", err)
		return nil
	}
	pkt := serverpackets.ClanMemberList{
		MaxMembers: constants.MaxClanMembers,
		LeaderID:   uint32(clan.LeaderID),
		Members:    members,
	}
	return c.SendMessage(pkt.Write())
}

// broadcastClanTag tells everyone online about a player's clan membership.
func (h *Handler) broadcastClanTag(playerID, clanID uint16) {
	pkt := serverpackets.ClanTag{PlayerID: playerID, ClanID: clanID}
	h.broadcast.ToAll(pkt.Write())
}

// takeClanProofs clears one item slot per founding proof and reports what was
// taken, keyed by slot. Each proof needs its own slot. Nothing is taken unless
// every proof is present.
func takeClanProofs(inv *model.Inventory) (map[uint8]uint16, bool) {
	found := make(map[uint8]uint16, len(model.ClanProofItems))
	for _, want := range model.ClanProofItems {
		var slot uint8
		for i := uint8(1); i <= constants.InventorySlots; i++ {
			if _, used := found[i]; used {
				continue
			}
			if inv.Slot(model.CategoryItem, i) == want {
				slot = i
				break
			}
		}
		if slot == 0 {
			return nil, false
		}
		found[slot] = want
	}
	for slot := range found {
		inv.SetSlot(model.CategoryItem, slot, 0)
	}
	return found, true
}

// restoreClanProofs puts proofs back after a founding that fell through.
func restoreClanProofs(p *model.Player, proofs map[uint8]uint16) {
	p.UpdateInventory(func(inv *model.Inventory) {
		for slot, itemID := range proofs {
			inv.SetSlot(model.CategoryItem, slot, itemID)
		}
	})
}
