package log

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Events are canonical CBOR with RFC 3339 nanosecond timestamps, so two
// emulator runs of the same script produce byte-comparable logs apart from
// the clock. Decoding stays lenient: records written by a newer build with
// extra keys still read.
var (
	logEncMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})
	logDecMode = mustDecMode(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic("log: cbor encoder options: " + err.Error())
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic("log: cbor decoder options: " + err.Error())
	}
	return m
}

// EncodeEvent returns the record bytes for a single event.
func EncodeEvent(event Event) ([]byte, error) {
	return logEncMode.Marshal(event)
}

// DecodeEvent parses one record.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	err := logDecMode.Unmarshal(data, &ev)
	return ev, err
}

// NewEncoder returns a stream encoder for appending records to w.
func NewEncoder(w io.Writer) *cbor.Encoder { return logEncMode.NewEncoder(w) }

// NewDecoder returns a stream decoder reading records from r.
func NewDecoder(r io.Reader) *cbor.Decoder { return logDecMode.NewDecoder(r) }
