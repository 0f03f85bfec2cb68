// Package codec provides the serialization hooks the endb facade applies to
// every value on its way to a backend and back.
//
// The facade stores heterogeneous values, so codecs work on any. Each codec
// documents its canonical decoded forms; a round-trip is deep-equal within
// those forms (JSON: float64 numbers, map[string]any objects, []any arrays).
package codec

// Codec encodes values to the bytes handed to a backend and decodes them
// back. Encode and Decode must be inverses up to the codec's canonical
// decoded forms.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(b []byte) (any, error)
}

// Funcs adapts a serialize/deserialize function pair into a Codec, for
// callers who already have bare functions.
func Funcs(encode func(any) ([]byte, error), decode func([]byte) (any, error)) Codec {
	return funcCodec{enc: encode, dec: decode}
}

type funcCodec struct {
	enc func(any) ([]byte, error)
	dec func([]byte) (any, error)
}

func (c funcCodec) Encode(v any) ([]byte, error) { return c.enc(v) }
func (c funcCodec) Decode(b []byte) (any, error) { return c.dec(b) }
