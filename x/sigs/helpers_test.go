package sigs

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/pacttest"
)

// StdTx is a signed transaction carrying a mock message.
type StdTx struct {
	pact.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &pacttest.Msg{RoutePath: "test/mock", Serialized: payload}
	return &StdTx{Tx: &pacttest.Tx{Msg: msg}}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
