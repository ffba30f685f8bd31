package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// PlantSet plants a seed from an inventory slot into a farmable spot.
//
// Structure:
// - u8: 1-based inventory slot of the seed
// - u8: plant spot id within the room
type PlantSet struct {
	SeedSlot uint8
	SpotID   uint8
}

// ParsePlantSet parses a PlantSet request from the given body.
func ParsePlantSet(data []byte) (*PlantSet, error) {
	r := protocol.NewReader(data)

	slot, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading seed slot: %w", err)
	}
	spot, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading spot id: %w", err)
	}
	return &PlantSet{SeedSlot: slot, SpotID: spot}, nil
}
