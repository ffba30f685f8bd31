package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Clan info request types.
const (
	ClanInfoMembers = 2
)

// ClanInfoRequest asks for clan data, currently the member list.
//
// Structure:
// - u8: request type
type ClanInfoRequest struct {
	Type uint8
}

// ParseClanInfoRequest parses a ClanInfoRequest from the given body.
func ParseClanInfoRequest(data []byte) (*ClanInfoRequest, error) {
	r := protocol.NewReader(data)
	t, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading request type: %w", err)
	}
	return &ClanInfoRequest{Type: t}, nil
}
