package gameserver

import (
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/slime2go/internal/crypto"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/protocol"
)

// Default write queue / timeout constants.
// Overridden by config values when available.
const (
	defaultSendQueueSize = 256
	defaultWriteTimeout  = 5 * time.Second
	defaultSyncTimeout   = 2 * time.Second
)

// Client represents a single game client connection.
type Client struct {
	conn   net.Conn
	ip     string
	cipher *crypto.Cipher

	// state uses atomic.Int32 for lock-free reads in the hot path
	state atomic.Int32

	// markedForDisconnection means the connection closes after the current
	// response is flushed. Set by Logout and by session eviction.
	markedForDisconnection atomic.Bool

	// mu guards the identity fields set once at login
	mu        sync.Mutex
	accountID int64
	device    string
	player    *model.Player

	// Per-client write queue. Handlers queue encrypted pool-backed frames;
	// writePump owns the socket.
	sendCh    chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once

	writePool    *BytePool
	writeTimeout time.Duration
}

// NewClient creates the client state for an accepted connection and starts
// its writer goroutine.
func NewClient(conn net.Conn, writePool *BytePool, sendQueueSize int, writeTimeout time.Duration) (*Client, error) {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return nil, fmt.Errorf("splitting host port: %w", err)
	}

	if sendQueueSize <= 0 {
		sendQueueSize = defaultSendQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	c := &Client{
		conn:         conn,
		ip:           host,
		cipher:       crypto.NewCipher(),
		sendCh:       make(chan []byte, sendQueueSize),
		closeCh:      make(chan struct{}),
		writePool:    writePool,
		writeTimeout: writeTimeout,
	}
	c.state.Store(int32(StateConnected))
	go c.writePump()
	return c, nil
}

// Conn returns the underlying network connection.
func (c *Client) Conn() net.Conn {
	return c.conn
}

// IP returns the client's remote IP address.
func (c *Client) IP() string {
	return c.ip
}

// Cipher returns the per-connection message cipher.
func (c *Client) Cipher() *crypto.Cipher {
	return c.cipher
}

// State returns the current connection state.
func (c *Client) State() ClientState {
	return ClientState(c.state.Load())
}

// SetState sets the connection state.
func (c *Client) SetState(s ClientState) {
	c.state.Store(int32(s))
}

// AccountID returns the logged-in account id, 0 before login.
func (c *Client) AccountID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accountID
}

// Device returns the device identifier presented at login.
func (c *Client) Device() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device
}

// Player returns the active player, nil before login.
func (c *Client) Player() *model.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player
}

// SetIdentity binds the logged-in account and player to the connection.
func (c *Client) SetIdentity(accountID int64, device string, p *model.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accountID = accountID
	c.device = device
	c.player = p
}

// MarkForDisconnection flags the connection to close after the pending
// response is flushed.
func (c *Client) MarkForDisconnection() {
	c.markedForDisconnection.Store(true)
}

// IsMarkedForDisconnection reports whether the read loop should stop.
func (c *Client) IsMarkedForDisconnection() bool {
	return c.markedForDisconnection.Load()
}

// writePump is the dedicated writer goroutine of this client. It reads
// encrypted frames from sendCh and writes them to the socket, batching with
// net.Buffers when the queue backs up, and returns every buffer to the pool.
func (c *Client) writePump() {
	bufs := make(net.Buffers, 0, 64)
	poolBufs := make([][]byte, 0, 64)

	defer func() {
		for {
			select {
			case pkt := <-c.sendCh:
				c.writePool.Put(pkt)
			default:
				return
			}
		}
	}()

	for {
		select {
		case pkt, ok := <-c.sendCh:
			if !ok {
				return
			}

			if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
				slog.Warn("set write deadline failed", "client", c.ip, "error", err)
				c.writePool.Put(pkt)
				return
			}

			queued := len(c.sendCh)
			if queued == 0 {
				// Single frame, direct write.
				_, err := c.conn.Write(pkt)
				c.writePool.Put(pkt)
				if err != nil {
					slog.Warn("write failed", "client", c.ip, "error", err)
					return
				}
				continue
			}

			// Drain the queue into one writev call.
			bufs = bufs[:0]
			poolBufs = poolBufs[:0]

			bufs = append(bufs, pkt)
			poolBufs = append(poolBufs, pkt)
			for range queued {
				p := <-c.sendCh
				bufs = append(bufs, p)
				poolBufs = append(poolBufs, p)
			}

			_, err := bufs.WriteTo(c.conn)

			for _, b := range poolBufs {
				c.writePool.Put(b)
			}

			if err != nil {
				slog.Warn("batch write failed", "client", c.ip, "error", err)
				return
			}

		case <-c.closeCh:
			return
		}
	}
}

// Send queues an encrypted frame for async delivery. Non-blocking: a full
// queue means a slow client, which gets disconnected.
// OWNERSHIP: takes ownership of the pool buffer; writePump returns it.
func (c *Client) Send(frame []byte) error {
	select {
	case c.sendCh <- frame:
		return nil
	case <-c.closeCh:
		c.writePool.Put(frame)
		return fmt.Errorf("client closed")
	default:
		c.writePool.Put(frame)
		slog.Warn("send queue full, disconnecting slow client", "client", c.ip)
		c.CloseAsync()
		return fmt.Errorf("send queue full")
	}
}

// SendSync queues an encrypted frame and blocks until accepted or timeout.
// Used for handler responses that must be delivered.
// OWNERSHIP: takes ownership of the pool buffer.
func (c *Client) SendSync(frame []byte, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case c.sendCh <- frame:
		return nil
	case <-timer.C:
		c.writePool.Put(frame)
		return fmt.Errorf("send timeout after %v", timeout)
	case <-c.closeCh:
		c.writePool.Put(frame)
		return fmt.Errorf("client closed")
	}
}

// SendMessage encodes a payload writer into a pooled frame and queues it
// synchronously. The writer is returned to its pool either way.
func (c *Client) SendMessage(w *protocol.Writer) error {
	defer w.Put()
	frame, err := c.writePool.EncodeFrame(c.cipher, w)
	if err != nil {
		return err
	}
	return c.SendSync(frame, defaultSyncTimeout)
}

// CloseAsync signals the writer goroutine to stop without closing the socket.
// The read loop notices via closeCh and runs the full cleanup.
func (c *Client) CloseAsync() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
		c.state.Store(int32(StateDisconnected))
	})
}

// Closed reports whether CloseAsync ran.
func (c *Client) Closed() bool {
	select {
	case <-c.closeCh:
		return true
	default:
		return false
	}
}

// CloseCh exposes the close signal for select loops.
func (c *Client) CloseCh() <-chan struct{} {
	return c.closeCh
}

// Close tears the connection down. Safe to call more than once.
func (c *Client) Close() error {
	c.CloseAsync()
	return c.conn.Close()
}
