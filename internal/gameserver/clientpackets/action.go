package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Action performs a body action (sit, wave and the like).
//
// Structure:
// - u8: action id
type Action struct {
	ActionID uint8
}

// ParseAction parses an Action request from the given body.
func ParseAction(data []byte) (*Action, error) {
	r := protocol.NewReader(data)
	id, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading action id: %w", err)
	}
	return &Action{ActionID: id}, nil
}
