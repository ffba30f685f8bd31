package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Emote plays an emote animation.
//
// Structure:
// - u8: emote id
type Emote struct {
	EmoteID uint8
}

// ParseEmote parses an Emote request from the given body.
func ParseEmote(data []byte) (*Emote, error) {
	r := protocol.NewReader(data)
	id, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading emote id: %w", err)
	}
	return &Emote{EmoteID: id}, nil
}
