// Package testutil holds small helpers shared by network-facing tests.
package testutil

import (
	"net"
	"sync"
	"testing"
	"time"
)

// PipeConn returns both ends of an in-memory connection and closes them
// when the test finishes. The ends report fake host:port addresses so code
// that parses RemoteAddr (e.g. NewClient) works over a pipe.
func PipeConn(t testing.TB) (client, server net.Conn) {
	t.Helper()

	server, client = net.Pipe()
	t.Cleanup(func() {
		_ = server.Close()
		_ = client.Close()
	})
	client = &addrConn{
		Conn:   client,
		local:  fakeAddr{"tcp", "127.0.0.1:40000"},
		remote: fakeAddr{"tcp", "127.0.0.1:5555"},
	}
	server = &addrConn{
		Conn:   server,
		local:  fakeAddr{"tcp", "127.0.0.1:5555"},
		remote: fakeAddr{"tcp", "127.0.0.1:40000"},
	}
	return client, server
}

// addrConn overrides a net.Conn's addresses with host:port fakes.
type addrConn struct {
	net.Conn
	local  net.Addr
	remote net.Addr
}

func (c *addrConn) LocalAddr() net.Addr  { return c.local }
func (c *addrConn) RemoteAddr() net.Addr { return c.remote }

// MockConn is a net.Conn that records writes and serves reads from a
// preloaded buffer. Safe for use from a single writer goroutine plus the
// test goroutine.
type MockConn struct {
	mu       sync.Mutex
	readBuf  []byte
	writeBuf []byte
	closed   bool
}

// NewMockConn creates an empty MockConn.
func NewMockConn() *MockConn {
	return &MockConn{}
}

// Preload appends data for subsequent Reads to return.
func (m *MockConn) Preload(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readBuf = append(m.readBuf, data...)
}

// Written returns a copy of everything written so far.
func (m *MockConn) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.writeBuf))
	copy(out, m.writeBuf)
	return out
}

func (m *MockConn) Read(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, net.ErrClosed
	}
	n := copy(b, m.readBuf)
	m.readBuf = m.readBuf[n:]
	return n, nil
}

func (m *MockConn) Write(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, net.ErrClosed
	}
	m.writeBuf = append(m.writeBuf, b...)
	return len(b), nil
}

func (m *MockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockConn) LocalAddr() net.Addr  { return fakeAddr{"tcp", "127.0.0.1:5555"} }
func (m *MockConn) RemoteAddr() net.Addr { return fakeAddr{"tcp", "127.0.0.1:40000"} }

func (m *MockConn) SetDeadline(time.Time) error      { return nil }
func (m *MockConn) SetReadDeadline(time.Time) error  { return nil }
func (m *MockConn) SetWriteDeadline(time.Time) error { return nil }

type fakeAddr struct {
	network string
	address string
}

func (a fakeAddr) Network() string { return a.network }
func (a fakeAddr) String() string  { return a.address }
