package gameserver

import (
	"context"

	"github.com/udisondev/slime2go/internal/gameserver/clientpackets"
	"github.com/udisondev/slime2go/internal/gameserver/serverpackets"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/ratelimit"
)

func (h *Handler) handleBank(ctx context.Context, c *Client, body []byte) error {
	if !h.allow(c, ratelimit.ActionBank) {
		return nil
	}
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseBankProcess(body)
	if err != nil {
		h.log.Debug("malformed bank request", "client", c.IP(), "error", err)
		return nil
	}

	switch req.Case {
	case clientpackets.BankDeposit:
		entry, err := p.Deposit(req.Amount)
		if err != nil {
			h.log.Debug("deposit rejected", "player", p.Username, "amount", req.Amount, "error", err)
			return nil
		}
		h.appendLedger(ctx, entry)
		pkt := serverpackets.BankResult{
			Case: serverpackets.BankDepositOK, Points: entry.PointsAfter, Bank: entry.BankAfter,
		}
		return c.SendMessage(pkt.Write())

	case clientpackets.BankWithdraw:
		entry, err := p.Withdraw(req.Amount)
		if err != nil {
			h.log.Debug("withdrawal rejected", "player", p.Username, "amount", req.Amount, "error", err)
			return nil
		}
		h.appendLedger(ctx, entry)
		pkt := serverpackets.BankResult{
			Case: serverpackets.BankWithdrawOK, Points: entry.PointsAfter, Bank: entry.BankAfter,
		}
		return c.SendMessage(pkt.Write())

	case clientpackets.BankTransfer:
		return h.handleBankTransfer(ctx, c, p, req)
	}

	h.log.Debug("unknown bank case", "player", p.Username, "case", req.Case)
	return nil
}

func (h *Handler) handleBankTransfer(ctx context.Context, c *Client, p *model.Player, req *clientpackets.BankProcess) error {
	if req.Amount == 0 || req.Receiver == "" {
		return nil
	}

	// Online receivers settle in memory; both wallets move together.
	if to, ok := h.world.PlayerByName(req.Receiver); ok {
		out, in, err := model.TransferBank(p, to, req.Amount)
		if err != nil {
			h.log.Debug("transfer rejected", "player", p.Username,
				"receiver", req.Receiver, "amount", req.Amount, "error", err)
			return nil
		}
		h.appendLedger(ctx, out)
		h.appendLedger(ctx, in)
		h.log.Info("bank transfer", "from", p.Username, "to", to.Username, "amount", req.Amount)
		pkt := serverpackets.BankTransferResult{Bank: out.BankAfter}
		return c.SendMessage(pkt.Write())
	}

	// Offline receivers get credited straight in the database.
	recv, err := h.stores.Characters.GetByUsername(ctx, req.Receiver)
	if err != nil {
		h.log.Error("looking up transfer receiver", "receiver", req.Receiver, "error", err)
		return nil
	}
	if recv == nil {
		return c.SendMessage((&serverpackets.BankReceiverMissing{}).Write())
	}
	if recv.ID == p.CharacterID {
		return nil
	}

	// Debit in memory first, then settle both rows in one transaction so a
	// crash never leaves the receiver credited without the sender debited.
	entry, err := p.DebitBank(req.Amount, "to:"+recv.Username)
	if err != nil {
		h.log.Debug("transfer rejected", "player", p.Username, "amount", req.Amount, "error", err)
		return nil
	}
	ok, err := h.stores.Characters.TransferBank(ctx, p.CharacterID, entry.BankAfter, recv.ID, req.Amount)
	if err != nil || !ok {
		if err != nil {
			h.log.Error("settling offline transfer", "receiver", req.Receiver, "error", err)
		}
		if _, cerr := p.CreditBank(req.Amount, "transfer refund"); cerr != nil {
			h.log.Error("refunding transfer sender", "player", p.Username, "error", cerr)
		}
		return nil
	}
	h.appendLedger(ctx, entry)
	h.log.Info("bank transfer", "from", p.Username, "to", recv.Username, "amount", req.Amount, "offline", true)
	pkt := serverpackets.BankTransferResult{Bank: entry.BankAfter}
	return c.SendMessage(pkt.Write())
}

func (h *Handler) handleRequestStatus(c *Client, body []byte) error {
	p := h.player(c)
	if p == nil {
		return nil
	}
	req, err := clientpackets.ParseRequestStatus(body)
	if err != nil {
		return nil
	}
	if req.Element != clientpackets.StatusBank {
		return nil
	}
	pkt := serverpackets.BankStatus{Bank: p.BankBalance()}
	return c.SendMessage(pkt.Write())
}

func (h *Handler) appendLedger(ctx context.Context, e model.LedgerEntry) {
	if err := h.stores.Ledger.Append(ctx, e); err != nil {
		h.log.Error("recording ledger entry", "character", e.CharacterID, "error", err)
	}
}
