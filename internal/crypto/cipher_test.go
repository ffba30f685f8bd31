package crypto

import (
	"crypto/rc4"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/slime2go/internal/constants"
)

func TestCipherRoundTrip(t *testing.T) {
	server := NewCipher()

	plaintext := []byte{0x0A, 0x00, 'a', 'l', 'i', 'c', 'e', 0x00}
	msg := make([]byte, len(plaintext))
	copy(msg, plaintext)

	// Client side enciphers with its encrypt key.
	client, err := rc4.NewCipher([]byte(constants.ClientEncryptKey))
	require.NoError(t, err)
	client.XORKeyStream(msg, msg)
	assert.NotEqual(t, plaintext, msg)

	require.NoError(t, server.Decrypt(msg))
	assert.Equal(t, plaintext, msg)
}

func TestCipherDirectionKeysDiffer(t *testing.T) {
	c := NewCipher()

	a := []byte("same bytes in both directions")
	b := make([]byte, len(a))
	copy(b, a)

	require.NoError(t, c.Encrypt(a))
	require.NoError(t, c.Decrypt(b))
	assert.NotEqual(t, a, b)
}

func TestCipherRekeysPerMessage(t *testing.T) {
	c := NewCipher()

	first := []byte("hello world")
	second := []byte("hello world")

	require.NoError(t, c.Encrypt(first))
	require.NoError(t, c.Encrypt(second))

	// No stream state carries over, identical plaintexts encipher identically.
	assert.Equal(t, first, second)
}

func TestCipherEmptyPayload(t *testing.T) {
	c := NewCipher()
	assert.NoError(t, c.Encrypt(nil))
	assert.NoError(t, c.Decrypt([]byte{}))
}
