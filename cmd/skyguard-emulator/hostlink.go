package main

import (
	"context"
	"errors"
	"sync"

	"github.com/skyguard-wallet/skyguard-go/pkg/transport"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

var errNoHost = errors.New("no host connected")

// hostBridge outlives host connections. Messages from whichever link is
// attached are forwarded onto one channel, and Send writes to that link.
type hostBridge struct {
	messages chan wire.Message

	mu   sync.Mutex
	link *transport.Link
}

func newHostBridge() *hostBridge {
	return &hostBridge{messages: make(chan wire.Message, 16)}
}

// Messages returns the channel the device reads host requests from.
func (b *hostBridge) Messages() <-chan wire.Message {
	return b.messages
}

// Connected reports whether a link is attached.
func (b *hostBridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.link != nil
}

// serve is the transport.Server OnLink callback.
func (b *hostBridge) serve(ctx context.Context, link *transport.Link) {
	b.mu.Lock()
	b.link = link
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		if b.link == link {
			b.link = nil
		}
		b.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-link.Messages():
			if !ok {
				return
			}
			select {
			case b.messages <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Send implements protect.Sender and fsm.Sender.
func (b *hostBridge) Send(msg wire.Message) error {
	b.mu.Lock()
	link := b.link
	b.mu.Unlock()

	if link == nil {
		return errNoHost
	}
	return link.Send(msg)
}
