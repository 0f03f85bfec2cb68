package codec

import (
	"encoding/base64"
	"encoding/json"
)

// binaryKey tags the one-key envelope JSON uses to round-trip a top-level
// []byte, which plain JSON would flatten to a base64 string.
const binaryKey = "$endb:binary"

// JSON is the default codec: encoding/json plus a binary envelope for
// top-level []byte values. Numbers decode to float64, objects to
// map[string]any and arrays to []any. The zero value is ready to use.
type JSON struct{}

var _ Codec = JSON{}

func (JSON) Encode(v any) ([]byte, error) {
	if b, ok := v.([]byte); ok {
		return json.Marshal(map[string]string{binaryKey: base64.StdEncoding.EncodeToString(b)})
	}
	return json.Marshal(v)
}

func (JSON) Decode(b []byte) (any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	if m, ok := v.(map[string]any); ok && len(m) == 1 {
		if s, ok := m[binaryKey].(string); ok {
			if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
				return raw, nil
			}
		}
	}
	return v, nil
}
