package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// PlantTakeFruit harvests the fruit of a grown plant.
//
// Structure:
// - u8: plant spot id within the room
// - u8: fruit slot (1..3)
type PlantTakeFruit struct {
	SpotID    uint8
	FruitSlot uint8
}

// ParsePlantTakeFruit parses a PlantTakeFruit request from the given body.
func ParsePlantTakeFruit(data []byte) (*PlantTakeFruit, error) {
	r := protocol.NewReader(data)

	spot, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading spot id: %w", err)
	}
	fruit, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading fruit slot: %w", err)
	}
	return &PlantTakeFruit{SpotID: spot, FruitSlot: fruit}, nil
}
