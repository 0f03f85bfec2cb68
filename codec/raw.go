package codec

import "fmt"

// Raw is an identity codec for values that already are raw bytes. Strings
// encode as their UTF-8 bytes; everything decodes back as []byte. Useful
// when the stored payload is opaque and only the facade's namespacing and
// backend plumbing are wanted.
type Raw struct{}

var _ Codec = Raw{}

func (Raw) Encode(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("codec: raw codec cannot encode %T", v)
}

func (Raw) Decode(b []byte) (any, error) { return b, nil }
