// Package input merges the device's event sources into one ordered stream.
//
// A gate blocks on Source.Next and sees three kinds of events: messages from
// the host, presses of the physical buttons, and one tick per second for
// countdowns.
package input

import (
	"context"
	"errors"
	"fmt"

	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// Source errors.
var (
	ErrClosed          = errors.New("input: source closed")
	ErrScriptExhausted = errors.New("input: script exhausted")
)

// Kind identifies the event type.
type Kind uint8

const (
	HostMessage Kind = iota
	ButtonEvent
	TimerTick
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case HostMessage:
		return "HOST_MESSAGE"
	case ButtonEvent:
		return "BUTTON"
	case TimerTick:
		return "TICK"
	default:
		return "UNKNOWN"
	}
}

// Button is a physical button release.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonYes
	ButtonNo
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "NONE"
	case ButtonYes:
		return "YES"
	case ButtonNo:
		return "NO"
	default:
		return "UNKNOWN"
	}
}

// Event is one input. Message is set for HostMessage, Button for ButtonEvent.
type Event struct {
	Kind    Kind
	Message wire.Message
	Button  Button
}

// String formats the event for logs. Message payloads are not included.
func (e Event) String() string {
	switch e.Kind {
	case HostMessage:
		if e.Message == nil {
			return "host(nil)"
		}
		return fmt.Sprintf("host(%s)", e.Message.MessageType())
	case ButtonEvent:
		return fmt.Sprintf("button(%s)", e.Button)
	default:
		return e.Kind.String()
	}
}

// Host wraps msg as a HostMessage event.
func Host(msg wire.Message) Event {
	return Event{Kind: HostMessage, Message: msg}
}

// Press returns a ButtonEvent.
func Press(b Button) Event {
	return Event{Kind: ButtonEvent, Button: b}
}

// Tick returns a TimerTick event.
func Tick() Event {
	return Event{Kind: TimerTick}
}

// Source yields events in arrival order.
type Source interface {
	// Next blocks until an event is available, the source closes or ctx is done.
	Next(ctx context.Context) (Event, error)
}

// TickResetter is implemented by sources whose tick phase can be restarted,
// so the next TimerTick arrives one full interval after ResetTicks.
type TickResetter interface {
	ResetTicks()
}
