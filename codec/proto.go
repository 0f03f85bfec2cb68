package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Proto serializes values as protobuf through structpb.Value, the well-known
// dynamic type. The zero value is ready to use.
//
// Encode coerces values into the Struct JSON domain: numbers widen to
// float64, maps must be map[string]any, and []byte becomes a base64 string.
// Prefer JSON or Msgpack when top-level binary blobs must round-trip as
// []byte.
type Proto struct{}

var _ Codec = Proto{}

func (Proto) Encode(v any) ([]byte, error) {
	pv, err := structpb.NewValue(v)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pv)
}

func (Proto) Decode(b []byte) (any, error) {
	pv := &structpb.Value{}
	if err := proto.Unmarshal(b, pv); err != nil {
		return nil, err
	}
	return pv.AsInterface(), nil
}
