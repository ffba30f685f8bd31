package gameserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/slime2go/internal/anticheat"
	"github.com/udisondev/slime2go/internal/config"
	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/protocol"
	"github.com/udisondev/slime2go/internal/ratelimit"
	"github.com/udisondev/slime2go/internal/world"
)

// Server accepts game client connections on the configured port and runs a
// read loop per connection.
type Server struct {
	log *slog.Logger
	cfg config.GameServer

	world     *world.World
	clients   *ClientManager
	handler   *Handler
	writePool *BytePool
	stores    Stores

	connCount atomic.Int64
	perIP     ipTracker

	listener net.Listener
	mu       sync.Mutex
}

// NewServer wires the server together. The handler, client manager and
// buffer pools are shared across all connections.
func NewServer(log *slog.Logger, cfg config.GameServer, w *world.World, stores Stores) *Server {
	clients := NewClientManager()
	writePool := NewBytePool(defaultWriteBufCap)
	limiter := ratelimit.New(ratelimit.DefaultConfigs())
	cheats := anticheat.NewTracker()

	return &Server{
		log:       log,
		cfg:       cfg,
		world:     w,
		clients:   clients,
		handler:   NewHandler(log, cfg, w, clients, writePool, limiter, cheats, stores),
		writePool: writePool,
		stores:    stores,
		perIP:     ipTracker{counts: make(map[string]int)},
	}
}

// Handler exposes the message handler, mainly for the world tick loop.
func (s *Server) Handler() *Handler {
	return s.handler
}

// Clients exposes the client manager for broadcasts outside the handler.
func (s *Server) Clients() *ClientManager {
	return s.clients
}

// Addr returns the bound listen address, nil before Run.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run listens on cfg.BindAddress:cfg.Port and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.BindAddress, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is done. Exposed for tests
// that bring their own listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.log.Info("game server started", "address", ln.Addr())

	var wg sync.WaitGroup
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			s.log.Error("accepting connection", "error", err)
			continue
		}

		if tcpConn, ok := conn.(*net.TCPConn); ok {
			if err := tcpConn.SetKeepAlive(true); err != nil {
				s.log.Warn("setting keepalive", "error", err)
			}
			if err := tcpConn.SetKeepAlivePeriod(30 * time.Second); err != nil {
				s.log.Warn("setting keepalive period", "error", err)
			}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConnection(ctx, conn)
		}()
	}

	wg.Wait()
	s.log.Info("game server stopped")
	return nil
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		s.log.Error("splitting remote address", "remote", conn.RemoteAddr(), "error", err)
		return
	}

	if !s.admit(ctx, host) {
		return
	}
	defer s.release(host)

	s.log.Info("client connected", "remote", host)

	c, err := NewClient(conn, s.writePool, s.cfg.SendQueueSize, s.cfg.WriteTimeout)
	if err != nil {
		s.log.Error("creating client", "remote", host, "error", err)
		return
	}
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		s.handler.Cleanup(cleanupCtx, c)
		c.Close()
	}()

	go func() {
		select {
		case <-ctx.Done():
		case <-c.CloseCh():
		}
		conn.Close()
	}()

	s.readLoop(ctx, c, conn)
}

// admit enforces the global and per-IP connection caps and the IP ban list.
func (s *Server) admit(ctx context.Context, host string) bool {
	if total := s.connCount.Add(1); total > int64(s.cfg.MaxConnections) {
		s.connCount.Add(-1)
		s.log.Warn("connection cap reached", "remote", host)
		return false
	}
	if !s.perIP.add(host, s.cfg.MaxConnectionsPerIP) {
		s.connCount.Add(-1)
		s.log.Warn("per-ip connection cap reached", "remote", host)
		return false
	}

	banned, err := s.stores.Bans.IsBanned(ctx, model.BanKindIP, host)
	if err != nil {
		s.log.Error("checking ip ban", "remote", host, "error", err)
	}
	if banned {
		s.release(host)
		s.log.Info("banned ip rejected", "remote", host)
		return false
	}
	return true
}

func (s *Server) release(host string) {
	s.connCount.Add(-1)
	s.perIP.remove(host)
}

func (s *Server) readLoop(ctx context.Context, c *Client, conn net.Conn) {
	buf := make([]byte, constants.MaxMessageSize)

	for {
		if c.IsMarkedForDisconnection() || c.Closed() {
			return
		}

		deadline := s.cfg.IdleTimeout
		if c.State() != StateInGame {
			deadline = s.cfg.UnauthenticatedTimeout
		}
		if err := conn.SetReadDeadline(time.Now().Add(deadline)); err != nil {
			return
		}

		payload, err := protocol.ReadMessage(conn, c.Cipher(), buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("client disconnected", "remote", c.IP())
			} else if ctx.Err() == nil && !c.Closed() {
				s.log.Debug("read failed", "remote", c.IP(), "error", err)
			}
			return
		}

		if err := s.handler.Handle(ctx, c, payload); err != nil {
			s.log.Warn("closing connection", "remote", c.IP(), "error", err)
			return
		}
	}
}

// ipTracker counts live connections per remote host.
type ipTracker struct {
	mu     sync.Mutex
	counts map[string]int
}

func (t *ipTracker) add(host string, limit int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.counts[host] >= limit {
		return false
	}
	t.counts[host]++
	return true
}

func (t *ipTracker) remove(host string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.counts[host] <= 1 {
		delete(t.counts, host)
		return
	}
	t.counts[host]--
}
