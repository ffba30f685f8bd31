package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// Bank response cases.
const (
	BankDepositOK  = 1
	BankWithdrawOK = 2
	BankTransferOK = 3
	BankNoReceiver = 4
)

// BankResult answers a deposit or withdrawal with both new balances.
type BankResult struct {
	Case   uint8
	Points uint32
	Bank   uint32
}

// Write serializes the packet.
func (p *BankResult) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgBankProcess)
	w.WriteU8(p.Case)
	w.WriteU32(p.Points)
	w.WriteU32(p.Bank)
	return w
}

// BankTransferResult answers a transfer with the sender's new bank balance.
type BankTransferResult struct {
	Bank uint32
}

// Write serializes the packet.
func (p *BankTransferResult) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgBankProcess)
	w.WriteU8(BankTransferOK)
	w.WriteU32(p.Bank)
	return w
}

// BankReceiverMissing rejects a transfer to an unknown name.
type BankReceiverMissing struct{}

// Write serializes the packet.
func (p *BankReceiverMissing) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgBankProcess)
	w.WriteU8(BankNoReceiver)
	return w
}

// BankStatus answers a RequestStatus query for the bank balance.
type BankStatus struct {
	Bank uint32
}

// Write serializes the packet.
func (p *BankStatus) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgRequestStatus)
	w.WriteU8(1)
	w.WriteU32(p.Bank)
	return w
}
