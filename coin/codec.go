package coin

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact/codec"
)

// Coin can hold any amount of a single currency. Amount is expressed in
// the smallest unit of that currency.
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (c *Coin) Reset()      { *c = Coin{} }
func (*Coin) ProtoMessage() {}

var _ proto.Message = (*Coin)(nil)

func (c *Coin) Marshal() ([]byte, error) {
	return codec.NewWriter().
		String(1, c.Ticker).
		Uint64(2, c.Amount).
		Result()
}

func (c *Coin) Unmarshal(raw []byte) error {
	c.Reset()
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			c.Ticker, err = f.String()
		case 2:
			c.Amount, err = f.Uint64()
		}
		return err
	})
}
