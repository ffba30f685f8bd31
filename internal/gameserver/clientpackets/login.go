// Package clientpackets parses the messages clients send. Every parser takes
// the decrypted payload body (message id already consumed) and returns a
// typed request, validating only shape; semantic checks stay in the handlers.
package clientpackets

import (
	"fmt"

	"github.com/udisondev/slime2go/internal/protocol"
)

// Login is the authentication request.
//
// Structure:
// - string: client version
// - string: username
// - string: password
// - string: device identifier (MAC)
type Login struct {
	Version  string
	Username string
	Password string
	Device   string
}

// ParseLogin parses a Login request from the given body.
func ParseLogin(data []byte) (*Login, error) {
	r := protocol.NewReader(data)

	version, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
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

	return &Login{
		Version:  version,
		Username: username,
		Password: password,
		Device:   device,
	}, nil
}
