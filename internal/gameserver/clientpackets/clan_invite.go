package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Invite answers.
const (
	ClanInviteAccept  = 1
	ClanInviteDecline = 2
)

// ClanInviteResponse answers a pending clan invitation. Inviting itself goes
// through ClanAdmin.
//
// Structure:
// - u8: response (1 accept, 2 decline)
type ClanInviteResponse struct {
	Response uint8
}

// ParseClanInviteResponse parses a ClanInviteResponse request from the given
// body.
func ParseClanInviteResponse(data []byte) (*ClanInviteResponse, error) {
	r := protocol.NewReader(data)
	resp, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &ClanInviteResponse{Response: resp}, nil
}
