package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/slime2go/internal/constants"
)

func newTestPlayer(t *testing.T, points, bank uint32) *Player {
	t.Helper()
	ch := &Character{
		ID:          1,
		AccountID:   1,
		Username:    "alice",
		Points:      points,
		BankBalance: bank,
		RoomID:      constants.SpawnRoomID,
		X:           constants.SpawnX,
		Y:           constants.SpawnY,
		BodyID:      constants.DefaultBody,
	}
	return NewPlayer(1, ch, &Inventory{CharacterID: 1})
}

func TestCreditDebit(t *testing.T) {
	p := newTestPlayer(t, 100, 0)

	entry, err := p.Credit(50, "pickup")
	require.NoError(t, err)
	assert.Equal(t, uint32(150), p.Points())
	assert.Equal(t, uint32(150), entry.PointsAfter)
	assert.Equal(t, LedgerCredit, entry.Op)

	entry, err = p.Debit(150, "shop")
	require.NoError(t, err)
	assert.Zero(t, p.Points())
	assert.Equal(t, uint32(150), entry.Amount)
}

func TestDebitInsufficient(t *testing.T) {
	p := newTestPlayer(t, 50, 0)

	_, err := p.Debit(100, "shop")
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, uint32(50), p.Points(), "rejected debit must not move the balance")
}

func TestCreditClampsAtCap(t *testing.T) {
	p := newTestPlayer(t, constants.MaxPoints-10, 0)

	entry, err := p.Credit(100, "reward")
	require.NoError(t, err)
	assert.Equal(t, uint32(10), entry.Amount, "entry records the applied amount")
	assert.Equal(t, uint32(constants.MaxPoints), p.Points())

	_, err = p.Credit(1, "reward")
	assert.ErrorIs(t, err, ErrPointsCapped)
}

func TestZeroAmountRejected(t *testing.T) {
	p := newTestPlayer(t, 100, 100)

	_, err := p.Credit(0, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = p.Debit(0, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = p.Deposit(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = p.Withdraw(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDepositWithdraw(t *testing.T) {
	p := newTestPlayer(t, 1000, 0)

	_, err := p.Deposit(600)
	require.NoError(t, err)
	assert.Equal(t, uint32(400), p.Points())
	assert.Equal(t, uint32(600), p.BankBalance())

	_, err = p.Withdraw(100)
	require.NoError(t, err)
	assert.Equal(t, uint32(500), p.Points())
	assert.Equal(t, uint32(500), p.BankBalance())

	_, err = p.Withdraw(501)
	assert.ErrorIs(t, err, ErrInsufficientBank)
	_, err = p.Deposit(501)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestWithdrawRespectsPointsCap(t *testing.T) {
	p := newTestPlayer(t, constants.MaxPoints-5, 100)

	_, err := p.Withdraw(10)
	assert.ErrorIs(t, err, ErrPointsCapped)
	assert.Equal(t, uint32(100), p.BankBalance())
}

func TestConcurrentWalletOps(t *testing.T) {
	p := newTestPlayer(t, 0, 0)

	const workers = 8
	const perWorker = 100

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				_, err := p.Credit(2, "")
				require.NoError(t, err)
				_, err = p.Debit(1, "")
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint32(workers*perWorker), p.Points())
}

func TestTransferBank(t *testing.T) {
	a := newTestPlayer(t, 0, 500)
	b := newTestPlayer(t, 0, 0)
	b.CharacterID = 2

	out, in, err := TransferBank(a, b, 300)
	require.NoError(t, err)
	assert.Equal(t, uint32(200), a.BankBalance())
	assert.Equal(t, uint32(300), b.BankBalance())
	assert.Equal(t, uint32(200), out.BankAfter)
	assert.Equal(t, uint32(300), in.BankAfter)

	_, _, err = TransferBank(a, b, 201)
	assert.ErrorIs(t, err, ErrInsufficientBank)

	_, _, err = TransferBank(a, a, 1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTransferBankReceiverCap(t *testing.T) {
	a := newTestPlayer(t, 0, 500)
	b := newTestPlayer(t, 0, constants.MaxBankBalance-10)
	b.CharacterID = 2

	_, _, err := TransferBank(a, b, 100)
	assert.ErrorIs(t, err, ErrBankCapped)
	assert.Equal(t, uint32(500), a.BankBalance(), "rejected transfer must not move funds")
}
