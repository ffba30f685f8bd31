package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// ClanCreate founds a new clan.
//
// Structure:
// - string: clan name
type ClanCreate struct {
	Name string
}

// ParseClanCreate parses a ClanCreate request from the given body.
func ParseClanCreate(data []byte) (*ClanCreate, error) {
	r := protocol.NewReader(data)
	name, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("reading clan name: %w", err)
	}
	return &ClanCreate{Name: name}, nil
}
