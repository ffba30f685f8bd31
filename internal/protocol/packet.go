package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/crypto"
)

// WriteMessage encrypts payload in-place and writes one framed message to w.
// Precondition: payload lives at buf[constants.PacketHeaderSize : constants.PacketHeaderSize+payloadLen].
func WriteMessage(w io.Writer, cipher *crypto.Cipher, buf []byte, payloadLen int) error {
	if payloadLen < constants.MessageTypeSize {
		return fmt.Errorf("write message: payload too short (%d)", payloadLen)
	}
	if payloadLen > constants.MaxMessageSize {
		return fmt.Errorf("write message: payload %d exceeds limit %d", payloadLen, constants.MaxMessageSize)
	}
	needed := constants.PacketHeaderSize + payloadLen
	if len(buf) < needed {
		return fmt.Errorf("write message: buffer too small (need %d, have %d)", needed, len(buf))
	}

	payload := buf[constants.PacketHeaderSize:needed]
	if err := cipher.Encrypt(payload); err != nil {
		return fmt.Errorf("encrypting message: %w", err)
	}

	binary.LittleEndian.PutUint16(buf[:constants.PacketHeaderSize], uint16(payloadLen))

	if _, err := w.Write(buf[:needed]); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	return nil
}

// ReadMessage reads one framed message from r into buf and decrypts it.
// Returns a subslice of buf with the plaintext payload (message id included,
// length header stripped).
func ReadMessage(r io.Reader, cipher *crypto.Cipher, buf []byte) ([]byte, error) {
	var header [constants.PacketHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading message header: %w", err)
	}

	payloadLen := int(binary.LittleEndian.Uint16(header[:]))
	if payloadLen < constants.MessageTypeSize {
		return nil, fmt.Errorf("invalid message length: %d", payloadLen)
	}
	if payloadLen > constants.MaxMessageSize {
		return nil, fmt.Errorf("message payload %d exceeds limit %d", payloadLen, constants.MaxMessageSize)
	}
	if payloadLen > len(buf) {
		return nil, fmt.Errorf("message payload %d exceeds buffer size %d", payloadLen, len(buf))
	}

	payload := buf[:payloadLen]
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("reading message payload: %w", err)
	}

	if err := cipher.Decrypt(payload); err != nil {
		return nil, fmt.Errorf("decrypting message: %w", err)
	}
	return payload, nil
}
