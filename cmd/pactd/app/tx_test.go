package app

import (
	"bytes"
	"testing"

	"github.com/iov-one/pact/codec"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/store"
	"github.com/iov-one/pact/x/escrow"
	"github.com/iov-one/pact/x/sigs"
)

func TestTxEncoding(t *testing.T) {
	msg := &escrow.CancelMsg{Escrow: pacttest.RandomAddr(t)}
	tx := &Tx{Msg: msg}
	sig, err := sigs.SignTx(maker, tx, "test-chain", 3)
	assert.Nil(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	raw, err := tx.Marshal()
	assert.Nil(t, err)
	decoded, err := TxDecoder(raw)
	assert.Nil(t, err)

	got, err := decoded.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, msg, got)
	assert.Equal(t, 1, len(decoded.(*Tx).Signatures))
	assert.Equal(t, int64(3), decoded.(*Tx).Signatures[0].Sequence)

	signBytes, err := decoded.(*Tx).GetSignBytes()
	assert.Nil(t, err)
	unsigned, err := (&Tx{Msg: msg}).Marshal()
	assert.Nil(t, err)
	if !bytes.Equal(signBytes, unsigned) {
		t.Fatal("signatures must not be part of the sign bytes")
	}

	// The signature verifies against the decoded transaction.
	conds, err := sigs.VerifyTxSignatures(store.MemStore(), decoded.(*Tx), "test-chain")
	assert.IsErr(t, sigs.ErrInvalidSequence, err)
	assert.Equal(t, 0, len(conds))
}

func TestTxRejectsMultipleMessages(t *testing.T) {
	first, err := (&escrow.CancelMsg{Escrow: pacttest.RandomAddr(t)}).Marshal()
	assert.Nil(t, err)
	second, err := (&escrow.ExchangeMsg{Escrow: pacttest.RandomAddr(t)}).Marshal()
	assert.Nil(t, err)
	raw, err := codec.NewWriter().Bytes(62, first).Bytes(61, second).Result()
	assert.Nil(t, err)

	_, err = TxDecoder(raw)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestTxWithoutMessage(t *testing.T) {
	tx, err := TxDecoder(nil)
	assert.Nil(t, err)
	_, err = tx.GetMsg()
	assert.IsErr(t, errors.ErrState, err)

	_, err = TxDecoder([]byte{0xff})
	assert.IsErr(t, errors.ErrModel, err)
}

func TestTxUnsupportedMessage(t *testing.T) {
	tx := &Tx{Msg: &pacttest.Msg{RoutePath: "foo/bar"}}
	_, err := tx.Marshal()
	assert.IsErr(t, errors.ErrType, err)
}

func TestMessageFieldsAreUnique(t *testing.T) {
	seen := make(map[int]bool)
	for _, f := range msgFields {
		if seen[f.num] {
			t.Fatalf("field %d used twice", f.num)
		}
		seen[f.num] = true
		num, ok := msgField(f.new().Path())
		assert.Equal(t, true, ok)
		assert.Equal(t, f.num, num)
	}
}
