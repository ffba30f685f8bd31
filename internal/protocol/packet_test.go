package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/crypto"
)

func frame(t *testing.T, payload []byte) []byte {
	t.Helper()
	buf := make([]byte, constants.PacketHeaderSize+len(payload))
	copy(buf[constants.PacketHeaderSize:], payload)

	var out bytes.Buffer
	require.NoError(t, WriteMessage(&out, crypto.NewCipher(), buf, len(payload)))
	return out.Bytes()
}

func TestMessageRoundTrip(t *testing.T) {
	w := NewWriter(MsgChat, 64)
	w.WriteU16(7) // player id
	w.WriteString("hello")
	plaintext := append([]byte(nil), w.Bytes()...)

	wire := frame(t, w.Bytes())

	// Header is plaintext length, unencrypted.
	assert.Equal(t, uint16(len(plaintext)), binary.LittleEndian.Uint16(wire[:2]))
	assert.NotEqual(t, plaintext, wire[2:])

	// RC4 is symmetric, re-applying the server→client key deciphers.
	got := append([]byte(nil), wire[2:]...)
	require.NoError(t, crypto.NewCipher().Encrypt(got))
	assert.Equal(t, plaintext, got)
}

func TestReadMessage(t *testing.T) {
	w := NewWriter(MsgPing, 8)
	w.WriteU32(42)
	plaintext := append([]byte(nil), w.Bytes()...)

	// Client-side framing: encrypt with the client key, prefix the length.
	// Decrypt uses that same key, and RC4 is symmetric.
	enc := append([]byte(nil), plaintext...)
	require.NoError(t, crypto.NewCipher().Decrypt(enc))
	var wire bytes.Buffer
	var hdr [2]byte
	binary.LittleEndian.PutUint16(hdr[:], uint16(len(enc)))
	wire.Write(hdr[:])
	wire.Write(enc)

	buf := make([]byte, constants.MaxMessageSize)
	payload, err := ReadMessage(&wire, crypto.NewCipher(), buf)
	require.NoError(t, err)
	assert.Equal(t, plaintext, payload)
}

func TestReadMessageRejectsOversize(t *testing.T) {
	var wire bytes.Buffer
	var hdr [2]byte
	binary.LittleEndian.PutUint16(hdr[:], uint16(constants.MaxMessageSize+1))
	wire.Write(hdr[:])

	buf := make([]byte, constants.MaxMessageSize)
	_, err := ReadMessage(&wire, crypto.NewCipher(), buf)
	assert.ErrorContains(t, err, "exceeds limit")
}

func TestReadMessageRejectsShortFrame(t *testing.T) {
	for _, n := range []uint16{0, 1} {
		var wire bytes.Buffer
		var hdr [2]byte
		binary.LittleEndian.PutUint16(hdr[:], n)
		wire.Write(hdr[:])

		buf := make([]byte, 32)
		_, err := ReadMessage(&wire, crypto.NewCipher(), buf)
		assert.ErrorContains(t, err, "invalid message length")
	}
}

func TestReadMessageTruncatedPayload(t *testing.T) {
	var wire bytes.Buffer
	var hdr [2]byte
	binary.LittleEndian.PutUint16(hdr[:], 10)
	wire.Write(hdr[:])
	wire.Write([]byte{1, 2, 3}) // 7 bytes short

	buf := make([]byte, 32)
	_, err := ReadMessage(&wire, crypto.NewCipher(), buf)
	assert.ErrorContains(t, err, "reading message payload")
}

func TestReaderWriter(t *testing.T) {
	w := NewWriter(MsgBankProcess, 64)
	w.WriteU8(2)
	w.WriteU16(1000)
	w.WriteU32(100_000)
	w.WriteI32(-5)
	w.WriteF32(385.5)
	w.WriteString("alice")

	r := NewReader(w.Bytes())
	id, err := r.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, MsgBankProcess, MsgType(id))

	u8, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(2), u8)

	u16, err := r.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(1000), u16)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(100_000), u32)

	i32, err := r.ReadI32()
	require.NoError(t, err)
	assert.Equal(t, int32(-5), i32)

	f32, err := r.ReadF32()
	require.NoError(t, err)
	assert.InDelta(t, 385.5, f32, 0.001)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "alice", s)
	assert.Zero(t, r.Remaining())
}

func TestReaderUnterminatedString(t *testing.T) {
	r := NewReader([]byte{'a', 'b', 'c'})
	_, err := r.ReadString()
	assert.ErrorContains(t, err, "unterminated")
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{1})
	_, err := r.ReadU32()
	assert.ErrorContains(t, err, "not enough data")
}

func TestMsgTypeValid(t *testing.T) {
	tests := []struct {
		id    MsgType
		valid bool
	}{
		{MsgNewPlayer, true},
		{MsgLogin, true},
		{MsgBbsPost, true},
		{0, false},
		{20, false},
		{38, false},
		{102, false},
		{142, false},
		{9999, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.id.Valid(), "id %d", tt.id)
	}
}
