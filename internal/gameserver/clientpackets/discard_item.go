package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// DiscardItem drops an inventory item onto the room floor.
//
// Structure:
// - u8: 1-based inventory slot
// - u16: drop x
// - u16: drop y
type DiscardItem struct {
	Slot uint8
	X    uint16
	Y    uint16
}

// ParseDiscardItem parses a DiscardItem request from the given body.
func ParseDiscardItem(data []byte) (*DiscardItem, error) {
	r := protocol.NewReader(data)

	slot, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading slot: %w", err)
	}
	x, err := r.ReadU16()
	if err != nil {
		return nil, fmt.Errorf("reading x: %w", err)
	}
	y, err := r.ReadU16()
	if err != nil {
		return nil, fmt.Errorf("reading y: %w", err)
	}
	return &DiscardItem{Slot: slot, X: x, Y: y}, nil
}
