package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Clan admin actions.
const (
	ClanAdminKick   = 1
	ClanAdminInvite = 2
)

// ClanAdmin is a leader-only clan management request. Kick addresses a member
// by list slot; invite addresses an online player by runtime id.
//
// Structure:
// - u8: action (1 kick, 2 invite)
// - u8: member slot (kick only)
// - u16: target player id (invite only)
type ClanAdmin struct {
	Action     uint8
	MemberSlot uint8
	TargetPID  uint16
}

// ParseClanAdmin parses a ClanAdmin request from the given body.
func ParseClanAdmin(data []byte) (*ClanAdmin, error) {
	r := protocol.NewReader(data)

	action, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading action: %w", err)
	}

	a := &ClanAdmin{Action: action}
	switch action {
	case ClanAdminKick:
		if a.MemberSlot, err = r.ReadU8(); err != nil {
			return nil, fmt.Errorf("reading member slot: %w", err)
		}
	case ClanAdminInvite:
		if a.TargetPID, err = r.ReadU16(); err != nil {
			return nil, fmt.Errorf("reading target player: %w", err)
		}
	}
	return a, nil
}
