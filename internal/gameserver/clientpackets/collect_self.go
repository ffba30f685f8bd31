package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// CollectSelf claims a room collectible.
//
// Structure:
// - u8: collectible spawn id within the room
type CollectSelf struct {
	ColID uint8
}

// ParseCollectSelf parses a CollectSelf request from the given body.
func ParseCollectSelf(data []byte) (*CollectSelf, error) {
	r := protocol.NewReader(data)
	id, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading collectible id: %w", err)
	}
	return &CollectSelf{ColID: id}, nil
}
