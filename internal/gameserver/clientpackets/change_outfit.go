package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// ChangeOutfit equips an inventory slot onto the body or one of the two
// accessory anchors. The ids ChangeOutfit (13), ChangeAcc1 (25) and
// ChangeAcc2 (26) all carry this body.
//
// Structure:
// - u8: 1-based inventory slot
type ChangeOutfit struct {
	Slot uint8
}

// ParseChangeOutfit parses a ChangeOutfit request from the given body.
func ParseChangeOutfit(data []byte) (*ChangeOutfit, error) {
	r := protocol.NewReader(data)
	slot, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading slot: %w", err)
	}
	return &ChangeOutfit{Slot: slot}, nil
}
