package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// TakeItem picks a discarded item up from the floor.
//
// Structure:
// - u16: ground item instance id
type TakeItem struct {
	InstanceID uint16
}

// ParseTakeItem parses a TakeItem request from the given body.
func ParseTakeItem(data []byte) (*TakeItem, error) {
	r := protocol.NewReader(data)
	id, err := r.ReadU16()
	if err != nil {
		return nil, fmt.Errorf("reading instance id: %w", err)
	}
	return &TakeItem{InstanceID: id}, nil
}
