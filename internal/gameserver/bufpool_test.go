package gameserver

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/crypto"
	"github.com/udisondev/slime2go/internal/protocol"
)

func TestBytePool_GetPut(t *testing.T) {
	p := NewBytePool(64)

	b := p.Get(16)
	if len(b) != 16 {
		t.Fatalf("Get(16) returned len %d", len(b))
	}
	for i := range b {
		b[i] = 0xFF
	}
	p.Put(b)

	b2 := p.Get(16)
	for i, v := range b2 {
		if v != 0 {
			t.Fatalf("recycled buffer not cleared at %d: %x", i, v)
		}
	}
}

func TestBytePool_GetLargerThanCap(t *testing.T) {
	p := NewBytePool(8)
	b := p.Get(1024)
	if len(b) != 1024 {
		t.Fatalf("Get(1024) returned len %d", len(b))
	}
}

func TestEncodeFrame(t *testing.T) {
	p := NewBytePool(64)
	w := protocol.GetWriter(protocol.MsgChat)
	defer w.Put()
	w.WriteU16(42)
	w.WriteString("hello")

	payload := make([]byte, w.Len())
	copy(payload, w.Bytes())

	frame, err := p.EncodeFrame(crypto.NewCipher(), w)
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	defer p.Put(frame)

	if got := int(binary.LittleEndian.Uint16(frame[:2])); got != len(payload) {
		t.Errorf("length header = %d, want %d", got, len(payload))
	}

	// The cipher re-keys per message and RC4 is its own inverse, so applying
	// the server-direction keystream once more restores the plaintext.
	body := make([]byte, len(frame)-2)
	copy(body, frame[2:])
	if err := crypto.NewCipher().Encrypt(body); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if !bytes.Equal(body, payload) {
		t.Errorf("decrypted frame = %x, want %x", body, payload)
	}
}

func TestEncodeFrame_Oversized(t *testing.T) {
	p := NewBytePool(64)
	w := protocol.GetWriter(protocol.MsgChat)
	defer w.Put()
	w.WriteBytes(make([]byte, constants.MaxMessageSize+1))

	if _, err := p.EncodeFrame(crypto.NewCipher(), w); err == nil {
		t.Fatal("expected error for oversized payload")
	}
}

func TestCloneFrame(t *testing.T) {
	p := NewBytePool(64)
	orig := []byte{1, 2, 3, 4}
	clone := p.CloneFrame(orig)
	if !bytes.Equal(orig, clone) {
		t.Fatalf("clone = %v, want %v", clone, orig)
	}
	clone[0] = 99
	if orig[0] != 1 {
		t.Error("mutating the clone changed the original")
	}
}
