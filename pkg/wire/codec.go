package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for protocol messages.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for protocol messages.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical, // Deterministic key ordering
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Lenient for forward compatibility: unknown keys are ignored.
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Codec errors.
var (
	// ErrUnknownMessageType indicates an envelope names no known message.
	ErrUnknownMessageType = errors.New("unknown message type")

	// ErrNilMessage indicates Encode was called with a nil message.
	ErrNilMessage = errors.New("nil message")
)

// Envelope is the outer frame payload: a type tag and the encoded message.
type Envelope struct {
	Type    MessageType     `cbor:"1,keyasint"`
	Payload cbor.RawMessage `cbor:"2,keyasint,omitempty"`
}

// Marshal encodes a value to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into a value.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// NewEncoder creates a new CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a new CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// Encode wraps msg in an Envelope and encodes it.
func Encode(msg Message) ([]byte, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	payload, err := Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", msg.MessageType(), err)
	}
	return Marshal(&Envelope{Type: msg.MessageType(), Payload: payload})
}

// Decode decodes an Envelope and the message it carries.
func Decode(data []byte) (Message, error) {
	var env Envelope
	if err := Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	msg := New(env.Type)
	if msg == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMessageType, env.Type)
	}
	if len(env.Payload) > 0 {
		if err := Unmarshal(env.Payload, msg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", env.Type, err)
		}
	}
	return msg, nil
}

// PeekMessageType returns the envelope type without decoding the payload.
func PeekMessageType(data []byte) (MessageType, error) {
	var env struct {
		Type MessageType `cbor:"1,keyasint"`
	}
	if err := Unmarshal(data, &env); err != nil {
		return 0, fmt.Errorf("failed to peek message: %w", err)
	}
	return env.Type, nil
}
