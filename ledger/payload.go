package ledger

import "encoding/json"

// Payload is the content attached to a block. The ledger never looks inside a
// payload: it only needs a deterministic encoding to hash, so equal payloads must
// always produce equal bytes.
type Payload interface {
	CanonicalBytes() ([]byte, error)
}

// Bytes is a raw payload. It is backed by a string so that blocks holding it
// remain comparable with ==.
type Bytes string

func (b Bytes) CanonicalBytes() ([]byte, error) {
	return []byte(b), nil
}

// Text is a UTF-8 string payload.
type Text string

func (t Text) CanonicalBytes() ([]byte, error) {
	return []byte(t), nil
}

// JSON wraps any value whose encoding/json form is stable. Structs and maps
// qualify; values containing floats that do not round-trip or custom marshalers
// with unstable output do not.
type JSON struct {
	Value any
}

func (j JSON) CanonicalBytes() ([]byte, error) {
	return json.Marshal(j.Value)
}

func (j JSON) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Value)
}
