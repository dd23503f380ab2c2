package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/skyguard-wallet/skyguard-go/pkg/log"
)

// DefaultAddress is where the emulator listens by default.
const DefaultAddress = "127.0.0.1:21325"

// ErrServerRunning is returned by Start on a running server.
var ErrServerRunning = errors.New("server already running")

// ServerConfig configures a Server.
type ServerConfig struct {
	// Address to listen on (e.g., "127.0.0.1:21325").
	Address string

	// MaxMessageSize is the maximum message size (default: 64KB).
	MaxMessageSize uint32

	// Logger for protocol logging (optional).
	Logger log.Logger

	// OnLink serves one host. The link is closed when it returns.
	OnLink func(ctx context.Context, link *Link)

	// OnError is called when an error occurs (optional).
	OnError func(err error)
}

// Server accepts host connections, one at a time. A second host is
// disconnected while the first is attached.
type Server struct {
	config   ServerConfig
	listener net.Listener

	busy    atomic.Bool
	active  *Link
	mu      sync.Mutex
	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer creates a server.
func NewServer(config ServerConfig) (*Server, error) {
	if config.OnLink == nil {
		return nil, fmt.Errorf("OnLink is required")
	}
	if config.Address == "" {
		config.Address = DefaultAddress
	}
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	return &Server{config: config}, nil
}

// Start starts the server and begins accepting connections.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return ErrServerRunning
	}

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running.Store(true)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener and the active link, then waits for handlers.
func (s *Server) Stop() error {
	if !s.running.Swap(false) {
		return nil
	}
	s.cancel()
	s.listener.Close()

	s.mu.Lock()
	if s.active != nil {
		s.active.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// Addr returns the server's listen address.
func (s *Server) Addr() net.Addr {
	if s.listener != nil {
		return s.listener.Addr()
	}
	return nil
}

// Connected reports whether a host is attached.
func (s *Server) Connected() bool {
	return s.busy.Load()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.running.Load() && s.config.OnError != nil {
				s.config.OnError(fmt.Errorf("accept error: %w", err))
			}
			continue
		}

		if !s.busy.CompareAndSwap(false, true) {
			s.logState("", "REJECTED", conn.RemoteAddr().String())
			conn.Close()
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer s.busy.Store(false)

	connID := uuid.New().String()
	link := NewLink(conn, LinkConfig{
		ConnID:         connID,
		MaxMessageSize: s.config.MaxMessageSize,
		Logger:         s.config.Logger,
	})

	s.mu.Lock()
	s.active = link
	s.mu.Unlock()

	s.logState(connID, "CONNECTED", conn.RemoteAddr().String())

	s.config.OnLink(s.ctx, link)
	link.Close()

	if err := link.Err(); err != nil && s.config.OnError != nil {
		s.config.OnError(err)
	}

	s.mu.Lock()
	s.active = nil
	s.mu.Unlock()

	s.logState(connID, "DISCONNECTED", conn.RemoteAddr().String())
}

func (s *Server) logState(connID, state, remote string) {
	if s.config.Logger == nil {
		return
	}
	s.config.Logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Layer:        log.LayerTransport,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityLink,
			NewState: state,
			Reason:   remote,
		},
	})
}
