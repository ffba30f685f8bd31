package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Warp is a room change request. The ids Warp (14) and ChangeRoom (5) both
// carry this body.
//
// Structure:
// - u16: destination room id
// - u16: arrival x
// - u16: arrival y
type Warp struct {
	RoomID uint16
	X      uint16
	Y      uint16
}

// ParseWarp parses a Warp request from the given body.
func ParseWarp(data []byte) (*Warp, error) {
	r := protocol.NewReader(data)

	roomID, err := r.ReadU16()
	if err != nil {
		return nil, fmt.Errorf("reading room id: %w", err)
	}
	x, err := r.ReadU16()
	if err != nil {
		return nil, fmt.Errorf("reading x: %w", err)
	}
	y, err := r.ReadU16()
	if err != nil {
		return nil, fmt.Errorf("reading y: %w", err)
	}
	return &Warp{RoomID: roomID, X: x, Y: y}, nil
}
