package transport

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// ErrLinkClosed is returned by Send after Close.
var ErrLinkClosed = errors.New("link closed")

// LinkConfig configures a Link.
type LinkConfig struct {
	// ConnID identifies the link in protocol logs.
	ConnID string

	// MaxMessageSize bounds incoming and outgoing frames (default: 64KB).
	MaxMessageSize uint32

	// Logger receives frame and message events (optional).
	Logger log.Logger

	// Buffer is the incoming message queue length (default: 16).
	Buffer int
}

// Link carries wire messages over a byte stream.
type Link struct {
	rwc    io.ReadWriteCloser
	framer *Framer
	config LinkConfig

	messages chan wire.Message

	mu     sync.Mutex
	err    error
	closed bool

	closeOnce sync.Once
	quit      chan struct{}
	done      chan struct{}
}

// NewLink wraps rwc and starts reading. Incoming messages are delivered on
// Messages until the stream ends.
func NewLink(rwc io.ReadWriteCloser, config LinkConfig) *Link {
	if config.Buffer <= 0 {
		config.Buffer = 16
	}
	framer := NewFramer(rwc, config.MaxMessageSize)
	if config.Logger != nil {
		framer.SetLogger(config.Logger, config.ConnID)
	}
	l := &Link{
		rwc:      rwc,
		framer:   framer,
		config:   config,
		messages: make(chan wire.Message, config.Buffer),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go l.readLoop()
	return l
}

// ConnID returns the link identifier.
func (l *Link) ConnID() string {
	return l.config.ConnID
}

// Messages returns the incoming message channel. It is closed when the
// stream ends; Err then reports why.
func (l *Link) Messages() <-chan wire.Message {
	return l.messages
}

// Done is closed once the reader has stopped.
func (l *Link) Done() <-chan struct{} {
	return l.done
}

// Err returns the error that ended the reader, or nil for a clean EOF.
func (l *Link) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Send encodes msg and writes it as one frame.
func (l *Link) Send(msg wire.Message) error {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return ErrLinkClosed
	}

	data, err := wire.Encode(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.MessageType(), err)
	}
	if err := l.framer.WriteFrame(data); err != nil {
		return err
	}
	l.logMessage(log.DirectionOut, msg)
	return nil
}

// Close closes the underlying stream and waits for the reader to stop.
func (l *Link) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.mu.Unlock()
		close(l.quit)
		err = l.rwc.Close()
	})
	<-l.done
	return err
}

func (l *Link) readLoop() {
	defer close(l.done)
	defer close(l.messages)

	for {
		data, err := l.framer.ReadFrame()
		if err != nil {
			l.finish(err)
			return
		}

		msg, err := wire.Decode(data)
		if err != nil {
			// Unknown or malformed messages are dropped; the host times out.
			if l.config.Logger != nil {
				ev := log.NewErrorEvent(log.LayerWire, err, "decode")
				ev.ConnectionID = l.config.ConnID
				l.config.Logger.Log(ev)
			}
			continue
		}
		l.logMessage(log.DirectionIn, msg)
		select {
		case l.messages <- msg:
		case <-l.quit:
			return
		}
	}
}

func (l *Link) finish(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == io.EOF || l.closed {
		err = nil
	}
	l.err = err
}

func (l *Link) logMessage(dir log.Direction, msg wire.Message) {
	if l.config.Logger == nil {
		return
	}
	l.config.Logger.Log(log.NewMessageEvent(l.config.ConnID, dir, msg))
}
