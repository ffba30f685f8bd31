package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Chat is an outgoing chat line.
//
// Structure:
// - string: message text
type Chat struct {
	Message string
}

// ParseChat parses a Chat request from the given body.
func ParseChat(data []byte) (*Chat, error) {
	r := protocol.NewReader(data)
	msg, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("reading message: %w", err)
	}
	return &Chat{Message: msg}, nil
}
