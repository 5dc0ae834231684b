package orm

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact/codec"
)

// MultiRef contains a list of references to pks.
type MultiRef struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs,omitempty"`
}

func (m *MultiRef) Reset()         { *m = MultiRef{} }
func (m *MultiRef) String() string { return proto.CompactTextString(m) }
func (*MultiRef) ProtoMessage()    {}

func (m *MultiRef) Marshal() ([]byte, error) {
	return codec.NewWriter().RepeatedBytes(1, m.Refs).Result()
}

func (m *MultiRef) Unmarshal(raw []byte) error {
	m.Reset()
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		ref, err := f.Bytes()
		if err != nil {
			return err
		}
		m.Refs = append(m.Refs, ref)
		return nil
	})
}
