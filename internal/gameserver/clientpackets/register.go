package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Register is the account creation request. Unlike Login it carries no
// version string.
//
// Structure:
// - string: username
// - string: password
// - string: device identifier (MAC)
type Register struct {
	Username string
	Password string
	Device   string
}

// ParseRegister parses a Register request from the given body.
func ParseRegister(data []byte) (*Register, error) {
	r := protocol.NewReader(data)

	username, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("reading username: %w", err)
	}
	password, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	device, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("reading device: %w", err)
	}

	return &Register{
		Username: username,
		Password: password,
		Device:   device,
	}, nil
}
