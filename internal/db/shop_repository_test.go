package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopItemsByRoom(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShopRepository(db)

	mock.ExpectQuery(`SELECT id, room_id, slot_id, category, item_id, price, stock, is_limited, anchor_x, anchor_y FROM shop_items`).
		WithArgs(uint16(32)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "room_id", "slot_id", "category", "item_id", "price", "stock", "is_limited", "anchor_x", "anchor_y",
		}).
			AddRow(int64(1), uint16(32), uint8(1), uint8(1), uint16(10), uint32(500), int16(0), false, uint16(120), uint16(60)).
			AddRow(int64(2), uint16(32), uint8(2), uint8(3), uint16(25), uint32(1200), int16(3), true, uint16(0), uint16(0)))

	items, err := r.ItemsByRoom(context.Background(), 32)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].InStock())
	assert.True(t, items[1].InStock())
	assert.Equal(t, uint32(1200), items[1].Price)
	assert.Equal(t, uint16(120), items[0].AnchorX)
	assert.Equal(t, uint16(60), items[0].AnchorY)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopGetEmptySlot(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShopRepository(db)

	mock.ExpectQuery(`SELECT id, room_id, slot_id`).
		WithArgs(uint16(32), uint8(9)).
		WillReturnError(pgx.ErrNoRows)

	it, err := r.Get(context.Background(), 32, 9)
	require.NoError(t, err)
	assert.Nil(t, it)
}

func TestShopDecrementStock(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShopRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE shop_items SET stock = stock - 1`).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	ok, err := r.DecrementStock(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// stock already gone, the conditional update matches no rows
	mock.ExpectExec(`UPDATE shop_items SET stock = stock - 1`).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	ok, err = r.DecrementStock(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopItemInStock(t *testing.T) {
	assert.True(t, (&ShopItem{IsLimited: false, Stock: 0}).InStock())
	assert.True(t, (&ShopItem{IsLimited: true, Stock: 1}).InStock())
	assert.False(t, (&ShopItem{IsLimited: true, Stock: 0}).InStock())
}
