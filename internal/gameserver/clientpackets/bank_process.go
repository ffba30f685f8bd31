package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Bank operation cases.
const (
	BankDeposit  = 1
	BankWithdraw = 2
	BankTransfer = 3
)

// BankProcess is a bank operation: deposit, withdraw or transfer.
//
// Structure:
// - u8: case (1 deposit, 2 withdraw, 3 transfer)
// - string: receiver name (transfer only)
// - u32: amount
type BankProcess struct {
	Case     uint8
	Receiver string
	Amount   uint32
}

// ParseBankProcess parses a BankProcess request from the given body.
func ParseBankProcess(data []byte) (*BankProcess, error) {
	r := protocol.NewReader(data)

	op, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading case: %w", err)
	}

	b := &BankProcess{Case: op}
	if op == BankTransfer {
		if b.Receiver, err = r.ReadString(); err != nil {
			return nil, fmt.Errorf("reading receiver: %w", err)
		}
	}
	if b.Amount, err = r.ReadU32(); err != nil {
		return nil, fmt.Errorf("reading amount: %w", err)
	}
	return b, nil
}
