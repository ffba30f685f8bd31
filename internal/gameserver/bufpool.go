package gameserver

import (
	"fmt"
	"sync"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/crypto"
	"github.com/udisondev/slime2go/internal/protocol"
)

// defaultWriteBufCap sizes fresh pool buffers; most frames are tiny.
const defaultWriteBufCap = 256

// BytePool is a pool of reusable []byte buffers backing the per-client write
// queues. Every frame handed to Client.Send comes from here and goes back
// after the write.
type BytePool struct {
	pool sync.Pool
}

// NewBytePool creates a buffer pool with the given default capacity for new
// slices.
func NewBytePool(defaultCap int) *BytePool {
	p := &BytePool{}
	p.pool.New = func() any {
		return make([]byte, 0, defaultCap)
	}
	return p
}

// Get returns a slice of length size, preferably from the pool.
func (p *BytePool) Get(size int) []byte {
	b := p.pool.Get().([]byte)
	if cap(b) < size {
		p.pool.Put(b)
		return make([]byte, size)
	}
	b = b[:size]
	clear(b)
	return b
}

// Put returns the slice to the pool for reuse.
func (p *BytePool) Put(b []byte) {
	if b == nil {
		return
	}
	p.pool.Put(b[:0])
}

// EncodeFrame turns a finished payload writer into a wire-ready frame in a
// pooled buffer: length header in front, payload encrypted in place. The
// cipher re-keys per message, so the ciphertext does not depend on which
// connection it goes out on. The caller owns the returned buffer until it is
// handed to Client.Send.
func (p *BytePool) EncodeFrame(cipher *crypto.Cipher, w *protocol.Writer) ([]byte, error) {
	payload := w.Bytes()
	if len(payload) > constants.MaxMessageSize {
		return nil, fmt.Errorf("payload %d exceeds limit %d", len(payload), constants.MaxMessageSize)
	}
	buf := p.Get(constants.PacketHeaderSize + len(payload))
	copy(buf[constants.PacketHeaderSize:], payload)
	if err := cipher.Encrypt(buf[constants.PacketHeaderSize:]); err != nil {
		p.Put(buf)
		return nil, fmt.Errorf("encrypting frame: %w", err)
	}
	buf[0] = byte(len(payload))
	buf[1] = byte(len(payload) >> 8)
	return buf, nil
}

// CloneFrame copies an encoded frame into a fresh pooled buffer. Broadcasts
// encode once and clone per recipient, because every client's writePump
// returns its buffer to the pool independently.
func (p *BytePool) CloneFrame(frame []byte) []byte {
	buf := p.Get(len(frame))
	copy(buf, frame)
	return buf
}
