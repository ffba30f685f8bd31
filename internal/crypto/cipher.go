// Package crypto implements the message cipher of the Slime Online 2 wire
// protocol.
//
// The client re-initializes RC4 for every message with a fixed key per
// direction, so there is no stream state to carry between messages. The
// length header in front of each message is never encrypted.
package crypto

import (
	"crypto/rc4"
	"fmt"

	"github.com/udisondev/slime2go/internal/constants"
)

// Cipher transforms message payloads in place. The zero value is not usable;
// construct it with NewCipher. A Cipher is not safe for concurrent use, each
// connection owns one.
type Cipher struct {
	decryptKey []byte // key of client→server messages
	encryptKey []byte // key of server→client messages
}

// NewCipher returns a Cipher keyed for the live client.
func NewCipher() *Cipher {
	return &Cipher{
		decryptKey: []byte(constants.ClientEncryptKey),
		encryptKey: []byte(constants.ClientDecryptKey),
	}
}

// Decrypt deciphers a client message payload in place.
func (c *Cipher) Decrypt(data []byte) error {
	return apply(c.decryptKey, data)
}

// Encrypt enciphers a server message payload in place.
func (c *Cipher) Encrypt(data []byte) error {
	return apply(c.encryptKey, data)
}

func apply(key, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	cipher, err := rc4.NewCipher(key)
	if err != nil {
		return fmt.Errorf("initializing rc4: %w", err)
	}
	cipher.XORKeyStream(data, data)
	return nil
}
