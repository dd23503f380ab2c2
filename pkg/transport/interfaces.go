package transport

import (
	"context"
	"net"

	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// MessageSender sends one wire message to the host.
// Implemented by Link.
type MessageSender interface {
	Send(msg wire.Message) error
}

// TransportServer accepts host connections.
// Implemented by Server.
type TransportServer interface {
	// Start begins accepting connections.
	Start(ctx context.Context) error

	// Stop gracefully stops the server.
	Stop() error

	// Addr returns the server's listen address.
	Addr() net.Addr

	// Connected reports whether a host is attached.
	Connected() bool
}

// FrameReadWriter provides length-prefixed frame I/O.
// Implemented by Framer.
type FrameReadWriter interface {
	// ReadFrame reads a length-prefixed frame.
	ReadFrame() ([]byte, error)

	// WriteFrame writes a length-prefixed frame.
	WriteFrame(data []byte) error
}

// Compile-time interface satisfaction checks.
var (
	_ MessageSender   = (*Link)(nil)
	_ TransportServer = (*Server)(nil)
	_ FrameReadWriter = (*Framer)(nil)
)
