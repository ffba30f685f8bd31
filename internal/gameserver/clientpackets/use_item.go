package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// UseItem consumes or activates an inventory item. The coordinates and the
// direction are optional on the wire; the client appends them only for items
// with a placed effect (coordinates) and for bubbles (direction).
//
// Structure:
// - u8: 1-based inventory slot
// - u16: effect x (optional)
// - u16: effect y (optional)
// - u8: direction (optional)
type UseItem struct {
	Slot      uint8
	HasPos    bool
	X         uint16
	Y         uint16
	Direction uint8
}

// ParseUseItem parses a UseItem request from the given body.
func ParseUseItem(data []byte) (*UseItem, error) {
	r := protocol.NewReader(data)

	slot, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading slot: %w", err)
	}

	u := &UseItem{Slot: slot}
	if r.Remaining() >= 4 {
		if u.X, err = r.ReadU16(); err != nil {
			return nil, fmt.Errorf("reading x: %w", err)
		}
		if u.Y, err = r.ReadU16(); err != nil {
			return nil, fmt.Errorf("reading y: %w", err)
		}
		u.HasPos = true
	}
	if r.Remaining() >= 1 {
		if u.Direction, err = r.ReadU8(); err != nil {
			return nil, fmt.Errorf("reading direction: %w", err)
		}
	}
	return u, nil
}
