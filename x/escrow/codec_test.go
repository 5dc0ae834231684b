package escrow

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact/pacttest"
	"github.com/iov-one/pact/pacttest/assert"
)

// escrowSchema mirrors the Escrow message of codec.proto and is encoded by
// the reflection based protobuf marshaler.
type escrowSchema struct {
	Seed               []byte `protobuf:"bytes,1,opt,name=seed,proto3"`
	Initializer        []byte `protobuf:"bytes,2,opt,name=initializer,proto3"`
	DepositTicker      string `protobuf:"bytes,3,opt,name=deposit_ticker,proto3"`
	TakerTicker        string `protobuf:"bytes,4,opt,name=taker_ticker,proto3"`
	InitializerAmount  uint64 `protobuf:"varint,5,opt,name=initializer_amount,proto3"`
	TakerAmount        uint64 `protobuf:"varint,6,opt,name=taker_amount,proto3"`
	InitializerReceive []byte `protobuf:"bytes,7,opt,name=initializer_receive,proto3"`
	InitializerDeposit []byte `protobuf:"bytes,8,opt,name=initializer_deposit,proto3"`
	Vault              []byte `protobuf:"bytes,9,opt,name=vault,proto3"`
	Bump               uint32 `protobuf:"varint,10,opt,name=bump,proto3"`
}

func (m *escrowSchema) Reset()         { *m = escrowSchema{} }
func (m *escrowSchema) String() string { return proto.CompactTextString(m) }
func (*escrowSchema) ProtoMessage()    {}

func TestEscrowWireFormat(t *testing.T) {
	esc := &Escrow{
		Seed:               []byte("seed0001"),
		Initializer:        pacttest.RandomAddr(t),
		DepositTicker:      "ETH",
		TakerTicker:        "IOV",
		InitializerAmount:  500,
		TakerAmount:        1000,
		InitializerReceive: pacttest.RandomAddr(t),
		InitializerDeposit: pacttest.RandomAddr(t),
		Vault:              pacttest.RandomAddr(t),
		Bump:               254,
	}
	schema := &escrowSchema{
		Seed:               esc.Seed,
		Initializer:        esc.Initializer,
		DepositTicker:      esc.DepositTicker,
		TakerTicker:        esc.TakerTicker,
		InitializerAmount:  esc.InitializerAmount,
		TakerAmount:        esc.TakerAmount,
		InitializerReceive: esc.InitializerReceive,
		InitializerDeposit: esc.InitializerDeposit,
		Vault:              esc.Vault,
		Bump:               esc.Bump,
	}

	got, err := esc.Marshal()
	assert.Nil(t, err)
	want, err := proto.Marshal(schema)
	assert.Nil(t, err)
	assert.Equal(t, want, got)

	var decoded escrowSchema
	assert.Nil(t, proto.Unmarshal(got, &decoded))
	assert.Equal(t, schema, &decoded)
}
