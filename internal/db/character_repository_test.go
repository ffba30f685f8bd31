package db

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferBank(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCharacterRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE characters SET bank_balance = bank_balance \+`).
		WithArgs(uint32(250), int64(7), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE characters SET bank_balance = \$1`).
		WithArgs(uint32(1000), int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	ok, err := r.TransferBank(context.Background(), 4, 1000, 7, 250)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferBankReceiverCapped(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCharacterRepository(db)

	// credit matches no row when it would push past the cap; the sender's
	// debit never reaches the database
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE characters SET bank_balance = bank_balance \+`).
		WithArgs(uint32(250), int64(7), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	ok, err := r.TransferBank(context.Background(), 4, 1000, 7, 250)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
