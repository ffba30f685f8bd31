package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// ShopBuy purchases a shop position in the current room.
//
// Structure:
// - u8: shop position id
type ShopBuy struct {
	PosID uint8
}

// ParseShopBuy parses a ShopBuy request from the given body.
func ParseShopBuy(data []byte) (*ShopBuy, error) {
	r := protocol.NewReader(data)
	pos, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading position id: %w", err)
	}
	return &ShopBuy{PosID: pos}, nil
}
