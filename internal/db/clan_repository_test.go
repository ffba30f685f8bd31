package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClanCreate(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewClanRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO clans`).
		WithArgs("Slimes", int64(5), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectExec(`INSERT INTO clan_members`).
		WithArgs(int64(3), int64(5), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	clan, err := r.Create(ctx, "Slimes", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), clan.ID)
	assert.Equal(t, int64(5), clan.LeaderID)

	// duplicate name maps to the sentinel
	mock.ExpectQuery(`INSERT INTO clans`).
		WithArgs("Slimes", int64(6), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = r.Create(ctx, "Slimes", 6)
	assert.ErrorIs(t, err, ErrClanNameTaken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClanDeleteTransaction(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewClanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE characters SET clan_id = NULL`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 4))
	mock.ExpectExec(`DELETE FROM clan_members`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectExec(`DELETE FROM clans`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	err := r.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
