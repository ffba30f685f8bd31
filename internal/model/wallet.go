package model

import (
	"errors"
	"time"

	"github.com/udisondev/slime2go/internal/constants"
)

// Wallet op outcomes. Handlers branch on these to pick the reply case.
var (
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInsufficientBank   = errors.New("insufficient bank balance")
	ErrPointsCapped       = errors.New("points balance at cap")
	ErrBankCapped         = errors.New("bank balance at cap")
	ErrInvalidAmount      = errors.New("invalid amount")
)

// LedgerOp names a wallet mutation in the audit trail.
type LedgerOp string

const (
	LedgerCredit   LedgerOp = "credit"
	LedgerDebit    LedgerOp = "debit"
	LedgerDeposit  LedgerOp = "deposit"
	LedgerWithdraw LedgerOp = "withdraw"
	LedgerTransfer LedgerOp = "transfer"
)

// LedgerEntry is one committed wallet mutation. Rejected operations produce
// no entry.
type LedgerEntry struct {
	CharacterID int64
	Op          LedgerOp
	Amount      uint32
	PointsAfter uint32
	BankAfter   uint32
	Detail      string
	At          time.Time
}

// Points returns the carried point balance.
func (p *Player) Points() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.points
}

// BankBalance returns the banked balance.
func (p *Player) BankBalance() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bank
}

// Credit adds points, clamping at the cap. Crediting zero is rejected; the
// committed entry records the actually applied amount when the cap truncates.
func (p *Player) Credit(amount uint32, detail string) (LedgerEntry, error) {
	if amount == 0 {
		return LedgerEntry{}, ErrInvalidAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.points >= constants.MaxPoints {
		return LedgerEntry{}, ErrPointsCapped
	}
	applied := amount
	if p.points+applied < p.points || p.points+applied > constants.MaxPoints {
		applied = constants.MaxPoints - p.points
	}
	p.points += applied
	return p.entry(LedgerCredit, applied, detail), nil
}

// Debit removes points. The balance never goes negative; an insufficient
// balance rejects the whole operation.
func (p *Player) Debit(amount uint32, detail string) (LedgerEntry, error) {
	if amount == 0 {
		return LedgerEntry{}, ErrInvalidAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.points < amount {
		return LedgerEntry{}, ErrInsufficientPoints
	}
	p.points -= amount
	return p.entry(LedgerDebit, amount, detail), nil
}

// Deposit moves points into the bank.
func (p *Player) Deposit(amount uint32) (LedgerEntry, error) {
	if amount == 0 {
		return LedgerEntry{}, ErrInvalidAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.points < amount {
		return LedgerEntry{}, ErrInsufficientPoints
	}
	if p.bank+amount < p.bank || p.bank+amount > constants.MaxBankBalance {
		return LedgerEntry{}, ErrBankCapped
	}
	p.points -= amount
	p.bank += amount
	return p.entry(LedgerDeposit, amount, ""), nil
}

// Withdraw moves points out of the bank.
func (p *Player) Withdraw(amount uint32) (LedgerEntry, error) {
	if amount == 0 {
		return LedgerEntry{}, ErrInvalidAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bank < amount {
		return LedgerEntry{}, ErrInsufficientBank
	}
	if p.points+amount < p.points || p.points+amount > constants.MaxPoints {
		return LedgerEntry{}, ErrPointsCapped
	}
	p.bank -= amount
	p.points += amount
	return p.entry(LedgerWithdraw, amount, ""), nil
}

// DebitBank removes banked points directly, for transfers to characters
// that are not online.
func (p *Player) DebitBank(amount uint32, detail string) (LedgerEntry, error) {
	if amount == 0 {
		return LedgerEntry{}, ErrInvalidAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bank < amount {
		return LedgerEntry{}, ErrInsufficientBank
	}
	p.bank -= amount
	return p.entry(LedgerTransfer, amount, detail), nil
}

// CreditBank puts banked points back, for transfers that could not settle.
func (p *Player) CreditBank(amount uint32, detail string) (LedgerEntry, error) {
	if amount == 0 {
		return LedgerEntry{}, ErrInvalidAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bank > constants.MaxBankBalance-amount {
		return LedgerEntry{}, ErrBankCapped
	}
	p.bank += amount
	return p.entry(LedgerTransfer, amount, detail), nil
}

func (p *Player) entry(op LedgerOp, amount uint32, detail string) LedgerEntry {
	return LedgerEntry{
		CharacterID: p.CharacterID,
		Op:          op,
		Amount:      amount,
		PointsAfter: p.points,
		BankAfter:   p.bank,
		Detail:      detail,
		At:          time.Now(),
	}
}

// TransferBank moves banked points between two players atomically with
// respect to both wallets. Lock order follows character id to avoid
// deadlocks between concurrent opposite transfers.
func TransferBank(from, to *Player, amount uint32) (LedgerEntry, LedgerEntry, error) {
	if amount == 0 {
		return LedgerEntry{}, LedgerEntry{}, ErrInvalidAmount
	}
	if from.CharacterID == to.CharacterID {
		return LedgerEntry{}, LedgerEntry{}, ErrInvalidAmount
	}

	first, second := from, to
	if second.CharacterID < first.CharacterID {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if from.bank < amount {
		return LedgerEntry{}, LedgerEntry{}, ErrInsufficientBank
	}
	if to.bank+amount < to.bank || to.bank+amount > constants.MaxBankBalance {
		return LedgerEntry{}, LedgerEntry{}, ErrBankCapped
	}
	from.bank -= amount
	to.bank += amount
	out := from.entry(LedgerTransfer, amount, "to:"+to.Username)
	in := to.entry(LedgerTransfer, amount, "from:"+from.Username)
	return out, in, nil
}
