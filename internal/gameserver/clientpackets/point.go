package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Point reports picking up one of the slime points scattered around a room.
//
// Structure:
// - u8: point index within the room
type Point struct {
	Index uint8
}

// ParsePoint parses a Point request from the given body.
func ParsePoint(data []byte) (*Point, error) {
	r := protocol.NewReader(data)
	idx, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading point index: %w", err)
	}
	return &Point{Index: idx}, nil
}
