package protocol

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
)

// Writer provides methods for building message payloads.
// Uses Little-Endian byte order for all multi-byte values.
type Writer struct {
	buf *bytes.Buffer
}

// writerPool reduces allocations by reusing Writers across messages.
var writerPool = sync.Pool{
	New: func() any {
		return &Writer{
			buf: bytes.NewBuffer(make([]byte, 0, 256)),
		}
	},
}

// GetWriter returns a reset Writer from the pool, seeded with the message id.
func GetWriter(t MsgType) *Writer {
	w := writerPool.Get().(*Writer)
	w.buf.Reset()
	w.WriteU16(uint16(t))
	return w
}

// Put returns a Writer to the pool. Do not use the Writer after Put.
func (w *Writer) Put() {
	writerPool.Put(w)
}

// NewWriter creates a standalone writer seeded with the message id.
func NewWriter(t MsgType, capacity int) *Writer {
	w := &Writer{buf: bytes.NewBuffer(make([]byte, 0, capacity))}
	w.WriteU16(uint16(t))
	return w
}

// WriteU8 writes a single byte.
func (w *Writer) WriteU8(b uint8) {
	w.buf.WriteByte(b)
}

// WriteU16 writes a uint16 (2 bytes, LE).
func (w *Writer) WriteU16(val uint16) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
}

// WriteU32 writes a uint32 (4 bytes, LE).
func (w *Writer) WriteU32(val uint32) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
	w.buf.WriteByte(byte(val >> 16))
	w.buf.WriteByte(byte(val >> 24))
}

// WriteI32 writes an int32 (4 bytes, LE).
func (w *Writer) WriteI32(val int32) {
	w.WriteU32(uint32(val))
}

// WriteF32 writes a float32 (4 bytes, LE, IEEE 754).
func (w *Writer) WriteF32(val float32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(val))
	w.buf.Write(tmp[:])
}

// WriteString writes the raw bytes of s followed by a NUL terminator.
func (w *Writer) WriteString(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// Bytes returns the accumulated payload including the message id prefix.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the current payload length.
func (w *Writer) Len() int {
	return w.buf.Len()
}
