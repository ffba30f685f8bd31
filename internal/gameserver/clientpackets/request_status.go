package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Status elements the client can query.
const (
	StatusBank = 1
)

// RequestStatus queries the status of a game element, currently only the
// bank balance.
//
// Structure:
// - u8: element
type RequestStatus struct {
	Element uint8
}

// ParseRequestStatus parses a RequestStatus request from the given body.
func ParseRequestStatus(data []byte) (*RequestStatus, error) {
	r := protocol.NewReader(data)
	el, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading element: %w", err)
	}
	return &RequestStatus{Element: el}, nil
}
