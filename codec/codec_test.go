package codec

import (
	"reflect"
	"strings"
	"testing"
)

// TestJSONRoundTrip covers the canonical decoded forms, binary envelope
// included.
func TestJSONRoundTrip(t *testing.T) {
	c := JSON{}
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"string", "hi", "hi"},
		{"float", 1.5, 1.5},
		{"int widens", 3, 3.0},
		{"bool", false, false},
		{"nil", nil, nil},
		{"object", map[string]any{"a": 1.0}, map[string]any{"a": 1.0}},
		{"array", []any{"x", 2.0}, []any{"x", 2.0}},
		{"binary", []byte{0x00, 0xfe, 0xff}, []byte{0x00, 0xfe, 0xff}},
		{"empty binary", []byte{}, []byte{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := c.Encode(tc.in)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := c.Decode(b)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("round trip: got %#v want %#v", got, tc.want)
			}
		})
	}
}

// TestJSONEnvelopeIsInvisible: a user map resembling the envelope but with
// a non-base64 payload stays a map.
func TestJSONEnvelopeIsInvisible(t *testing.T) {
	c := JSON{}
	in := map[string]any{"$endb:binary": "no spaces allowed in base64!"}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("lookalike map mangled: %#v", got)
	}
}

// TestJSONDecodeGarbage returns an error, not a zero value.
func TestJSONDecodeGarbage(t *testing.T) {
	if _, err := (JSON{}).Decode([]byte("{oops")); err == nil {
		t.Fatalf("Decode of invalid JSON should error")
	}
}

// TestMsgpackRoundTrip: binary and strings survive natively.
func TestMsgpackRoundTrip(t *testing.T) {
	c := Msgpack{}

	b, err := c.Encode([]byte{0x01, 0x02})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, []byte{0x01, 0x02}) {
		t.Fatalf("binary round trip = %#v", got)
	}

	b, _ = c.Encode("text")
	got, err = c.Decode(b)
	if err != nil || got != "text" {
		t.Fatalf("string round trip = %#v err=%v", got, err)
	}

	b, _ = c.Encode(2.5)
	got, err = c.Decode(b)
	if err != nil || got != 2.5 {
		t.Fatalf("float round trip = %#v err=%v", got, err)
	}
}

// TestCBORRoundTrip keeps maps in the string-keyed shape.
func TestCBORRoundTrip(t *testing.T) {
	c := MustCBOR(true)

	in := map[string]any{"name": "ada", "score": 1.5}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("map round trip = %#v, want %#v", got, in)
	}
}

// TestCBORDeterministic: same value, same bytes.
func TestCBORDeterministic(t *testing.T) {
	c := MustCBOR(true)
	in := map[string]any{"b": 1.0, "a": 2.0, "c": 3.0}

	b1, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b2, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(b1) != string(b2) {
		t.Fatalf("deterministic mode produced differing bytes")
	}
}

// TestProtoRoundTrip goes through structpb.Value.
func TestProtoRoundTrip(t *testing.T) {
	c := Proto{}

	in := map[string]any{"name": "ada", "tags": []any{"x", "y"}, "n": 4.0}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip = %#v, want %#v", got, in)
	}
}

// TestProtoRejectsUnrepresentable: a channel has no Struct form.
func TestProtoRejectsUnrepresentable(t *testing.T) {
	if _, err := (Proto{}).Encode(make(chan int)); err == nil {
		t.Fatalf("Encode of a channel should error")
	}
}

// TestRaw passes bytes and strings through.
func TestRaw(t *testing.T) {
	c := Raw{}

	b, err := c.Encode("plain")
	if err != nil || string(b) != "plain" {
		t.Fatalf("Encode string: b=%q err=%v", b, err)
	}
	got, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, []byte("plain")) {
		t.Fatalf("Decode = %#v", got)
	}

	if _, err := c.Encode(struct{}{}); err == nil {
		t.Fatalf("Raw should reject non-byte values")
	}
}

// TestLimit blocks oversized payloads at decode.
func TestLimit(t *testing.T) {
	c := Limit{Inner: JSON{}, MaxDecode: 8}

	small, _ := JSON{}.Encode("ok")
	if _, err := c.Decode(small); err != nil {
		t.Fatalf("Decode small: %v", err)
	}

	big, _ := JSON{}.Encode(strings.Repeat("x", 100))
	_, err := c.Decode(big)
	if err == nil {
		t.Fatalf("Decode oversized should error")
	}
	if !strings.Contains(err.Error(), "payload too large") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestFuncs adapts a bare pair.
func TestFuncs(t *testing.T) {
	c := Funcs(
		func(v any) ([]byte, error) { return []byte(v.(string)), nil },
		func(b []byte) (any, error) { return string(b), nil },
	)
	b, err := c.Encode("x")
	if err != nil || string(b) != "x" {
		t.Fatalf("Encode: b=%q err=%v", b, err)
	}
	got, err := c.Decode(b)
	if err != nil || got != "x" {
		t.Fatalf("Decode: got=%v err=%v", got, err)
	}
}
