package orm

import (
	"encoding/binary"

	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact/codec"
	"github.com/iov-one/pact/errors"
)

// Counter is a test model.
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

func (c *Counter) Reset()         { *c = Counter{} }
func (c *Counter) String() string { return proto.CompactTextString(c) }
func (*Counter) ProtoMessage()    {}

func (c *Counter) Marshal() ([]byte, error) {
	return codec.NewWriter().Int64(1, c.Count).Result()
}

func (c *Counter) Unmarshal(raw []byte) error {
	c.Reset()
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		var err error
		c.Count, err = f.Int64()
		return err
	})
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

func (c *Counter) Copy() Model {
	return &Counter{Count: c.Count}
}

// countByValue indexes counters by their count.
func countByValue(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(c.Count))
	return raw, nil
}

func countKey(n int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return raw
}
