package db

import (
	"context"
	"fmt"
)

// ShopItem is one slot of a room shop. Limited items track stock; unlimited
// items sell forever.
type ShopItem struct {
	ID        int64
	RoomID    uint16
	SlotID    uint8
	Category  uint8
	ItemID    uint16
	Price     uint32
	Stock     int16
	IsLimited bool

	// AnchorX/Y locate the shop position in the room. Zero anchors mean
	// the position has no placement and skips the distance check.
	AnchorX uint16
	AnchorY uint16
}

// InStock reports whether the item can currently be sold.
func (s *ShopItem) InStock() bool {
	return !s.IsLimited || s.Stock > 0
}

// ShopRepository persists shop catalogs and limited stock.
type ShopRepository struct {
	db *DB
}

// NewShopRepository creates the repository.
func NewShopRepository(db *DB) *ShopRepository {
	return &ShopRepository{db: db}
}

const shopColumns = `id, room_id, slot_id, category, item_id, price, stock, is_limited, anchor_x, anchor_y`

// ItemsByRoom returns all shop slots of a room ordered by slot.
func (r *ShopRepository) ItemsByRoom(ctx context.Context, roomID uint16) ([]ShopItem, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+shopColumns+` FROM shop_items WHERE room_id = $1 ORDER BY slot_id`, roomID)
	if err != nil {
		return nil, fmt.Errorf("querying shop of room %d: %w", roomID, err)
	}
	defer rows.Close()

	var items []ShopItem
	for rows.Next() {
		var it ShopItem
		if err := rows.Scan(&it.ID, &it.RoomID, &it.SlotID, &it.Category,
			&it.ItemID, &it.Price, &it.Stock, &it.IsLimited,
			&it.AnchorX, &it.AnchorY); err != nil {
			return nil, fmt.Errorf("scanning shop item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shop of room %d: %w", roomID, err)
	}
	return items, nil
}

// Get returns one shop slot. Returns nil, nil when the slot is empty.
func (r *ShopRepository) Get(ctx context.Context, roomID uint16, slotID uint8) (*ShopItem, error) {
	var it ShopItem
	err := r.db.Pool.QueryRow(ctx,
		`SELECT `+shopColumns+` FROM shop_items WHERE room_id = $1 AND slot_id = $2`,
		roomID, slotID,
	).Scan(&it.ID, &it.RoomID, &it.SlotID, &it.Category,
		&it.ItemID, &it.Price, &it.Stock, &it.IsLimited,
		&it.AnchorX, &it.AnchorY)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying shop slot %d of room %d: %w", slotID, roomID, err)
	}
	return &it, nil
}

// DecrementStock takes one unit of a limited item. Returns false when the
// stock was already gone, so concurrent purchases of the last unit resolve
// to a single winner.
func (r *ShopRepository) DecrementStock(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE shop_items SET stock = stock - 1
		 WHERE id = $1 AND is_limited AND stock > 0`, id)
	if err != nil {
		return false, fmt.Errorf("decrementing stock of shop item %d: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

// RestoreStock returns one unit, undoing a purchase that failed later.
func (r *ShopRepository) RestoreStock(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE shop_items SET stock = stock + 1 WHERE id = $1 AND is_limited`, id)
	if err != nil {
		return fmt.Errorf("restoring stock of shop item %d: %w", id, err)
	}
	return nil
}
