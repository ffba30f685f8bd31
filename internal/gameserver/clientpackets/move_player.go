package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/protocol"
)

// MovePlayer is a movement update. The direction code decides which
// coordinates follow it: ground starts, ground stops and landings carry
// both, Jump carries only x, the release and air codes carry none.
//
// Structure:
// - u8: direction code (1..13)
// - u16: x (direction-dependent)
// - u16: y (direction-dependent)
type MovePlayer struct {
	Direction uint8
	HasX      bool
	HasY      bool
	X         uint16
	Y         uint16
}

// ParseMovePlayer parses a MovePlayer request from the given body.
func ParseMovePlayer(data []byte) (*MovePlayer, error) {
	r := protocol.NewReader(data)

	direction, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading direction: %w", err)
	}

	m := &MovePlayer{Direction: direction}
	hasX, hasY := DirectionCoords(direction)
	if hasX {
		if m.X, err = r.ReadU16(); err != nil {
			return nil, fmt.Errorf("reading x: %w", err)
		}
		m.HasX = true
	}
	if hasY {
		if m.Y, err = r.ReadU16(); err != nil {
			return nil, fmt.Errorf("reading y: %w", err)
		}
		m.HasY = true
	}
	return m, nil
}

// DirectionCoords reports which coordinates a direction code carries on the
// wire. Unknown codes report none; validation rejects them later.
func DirectionCoords(direction uint8) (hasX, hasY bool) {
	switch direction {
	case constants.DirStartLeftGround, constants.DirStartRightGround,
		constants.DirStopLeftGround, constants.DirStopRightGround,
		constants.DirLanding:
		return true, true
	case constants.DirJump:
		return true, false
	default:
		return false, false
	}
}
