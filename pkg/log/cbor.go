package log

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Capture files use Core Deterministic Encoding, so equal events encode to
// equal bytes, and RFC 3339 timestamps with nanoseconds.
var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	opts.NilContainers = cbor.NilContainerAsNull
	em, err := opts.EncMode()
	if err != nil {
		panic("log: cbor encoder mode: " + err.Error())
	}
	return em
}

func mustDecMode() cbor.DecMode {
	// Unknown keys are skipped so older readers accept newer captures.
	dm, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyQuiet}.DecMode()
	if err != nil {
		panic("log: cbor decoder mode: " + err.Error())
	}
	return dm
}

// EncodeEvent encodes one event.
func EncodeEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// DecodeEvent decodes one event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	err := decMode.Unmarshal(data, &event)
	return event, err
}

// NewEncoder returns a stream encoder writing events to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a stream decoder reading events from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
