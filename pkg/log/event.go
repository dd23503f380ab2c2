package log

import (
	"time"

	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the host link (UUID), empty for local events.
	ConnectionID string `cbor:"2,keyasint,omitempty"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// DeviceID is the persistent device identifier.
	DeviceID string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"`
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"`
	Gate        *GateEvent        `cbor:"12,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"13,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates host to device.
	DirectionIn Direction = 0
	// DirectionOut indicates device to host.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the framing layer (raw bytes).
	LayerTransport Layer = 0
	// LayerWire is the message encoding layer.
	LayerWire Layer = 1
	// LayerGate is the human-interaction gate layer.
	LayerGate Layer = 2
	// LayerDispatch is the command dispatcher.
	LayerDispatch Layer = 3
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	case LayerGate:
		return "GATE"
	case LayerDispatch:
		return "DISPATCH"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a frame or protocol message.
	CategoryMessage Category = 0
	// CategoryGate indicates a gate transition.
	CategoryGate Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryGate:
		return "GATE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw frame data at the transport layer.
type FrameEvent struct {
	// Size is the frame size in bytes (including length prefix).
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes (may be truncated for large frames).
	// Never set for frames whose message type carries a secret.
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MessageEvent captures a decoded protocol message.
type MessageEvent struct {
	// Type is the wire message type.
	Type wire.MessageType `cbor:"1,keyasint"`

	// Payload is the redacted message.
	Payload any `cbor:"2,keyasint,omitempty"`

	// Failure is set for Failure responses.
	Failure *wire.FailureType `cbor:"3,keyasint,omitempty"`
}

// GateKind names a human-interaction gate.
type GateKind uint8

const (
	GateButton GateKind = iota
	GatePin
	GatePassphrase
	GateChangePin
	GateCountdown
)

// String returns the gate name.
func (g GateKind) String() string {
	switch g {
	case GateButton:
		return "BUTTON"
	case GatePin:
		return "PIN"
	case GatePassphrase:
		return "PASSPHRASE"
	case GateChangePin:
		return "CHANGE_PIN"
	case GateCountdown:
		return "COUNTDOWN"
	default:
		return "UNKNOWN"
	}
}

// GatePhase distinguishes a gate starting from a gate resolving.
type GatePhase uint8

const (
	GateStarted GatePhase = iota
	GateResolved
)

// String returns the phase name.
func (p GatePhase) String() string {
	switch p {
	case GateStarted:
		return "STARTED"
	case GateResolved:
		return "RESOLVED"
	default:
		return "UNKNOWN"
	}
}

// GateEvent captures a gate lifecycle step.
type GateEvent struct {
	Gate  GateKind  `cbor:"1,keyasint"`
	Phase GatePhase `cbor:"2,keyasint"`

	// Purpose is the request tag (button request type, PIN matrix type).
	Purpose string `cbor:"3,keyasint,omitempty"`

	// Outcome is set when Phase is GateResolved (CONFIRMED, DENIED, CANCELLED, ...).
	Outcome string `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures device and session lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityDevice indicates a device lifecycle change (idle, busy, halted).
	StateEntityDevice StateEntity = 0
	// StateEntitySession indicates a session cache change.
	StateEntitySession StateEntity = 1
	// StateEntityLink indicates a host link change.
	StateEntityLink StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityDevice:
		return "DEVICE"
	case StateEntitySession:
		return "SESSION"
	case StateEntityLink:
		return "LINK"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures error details.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}

// NewMessageEvent builds a wire-layer event for msg. The payload is redacted.
func NewMessageEvent(connID string, dir Direction, msg wire.Message) Event {
	me := &MessageEvent{
		Type:    msg.MessageType(),
		Payload: wire.Redact(msg),
	}
	if f, ok := msg.(*wire.Failure); ok {
		code := f.Code
		me.Failure = &code
	}
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    dir,
		Layer:        LayerWire,
		Category:     CategoryMessage,
		Message:      me,
	}
}

// NewGateEvent builds a gate-layer event.
func NewGateEvent(gate GateKind, phase GatePhase, purpose, outcome string) Event {
	return Event{
		Timestamp: time.Now(),
		Layer:     LayerGate,
		Category:  CategoryGate,
		Gate: &GateEvent{
			Gate:    gate,
			Phase:   phase,
			Purpose: purpose,
			Outcome: outcome,
		},
	}
}

// NewStateEvent builds a state change event.
func NewStateEvent(layer Layer, entity StateEntity, oldState, newState, reason string) Event {
	return Event{
		Timestamp: time.Now(),
		Layer:     layer,
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	}
}

// NewErrorEvent builds an error event.
func NewErrorEvent(layer Layer, err error, context string) Event {
	return Event{
		Timestamp: time.Now(),
		Layer:     layer,
		Category:  CategoryError,
		Error: &ErrorEventData{
			Layer:   layer,
			Message: err.Error(),
			Context: context,
		},
	}
}
