package app

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/codec"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/x/cash"
	"github.com/iov-one/pact/x/escrow"
	"github.com/iov-one/pact/x/sigs"
)

const fieldSignatures = 1

// msgFields maps every supported message to the field number it is
// serialized under. A transaction carries exactly one of them.
var msgFields = []struct {
	num int
	new func() pact.Msg
}{
	{51, func() pact.Msg { return new(cash.SendMsg) }},
	{52, func() pact.Msg { return new(cash.CreateAccountMsg) }},
	{53, func() pact.Msg { return new(cash.MintMsg) }},
	{54, func() pact.Msg { return new(cash.UpdateConfigurationMsg) }},
	{60, func() pact.Msg { return new(escrow.InitializeMsg) }},
	{61, func() pact.Msg { return new(escrow.ExchangeMsg) }},
	{62, func() pact.Msg { return new(escrow.CancelMsg) }},
	{63, func() pact.Msg { return new(escrow.UpdateConfigurationMsg) }},
	{70, func() pact.Msg { return new(sigs.BumpSequenceMsg) }},
}

func msgField(path string) (int, bool) {
	for _, f := range msgFields {
		if f.new().Path() == path {
			return f.num, true
		}
	}
	return 0, false
}

// Tx is the transaction format of the node. It wraps a single message
// together with the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
	Msg        pact.Msg             `json:"msg,omitempty"`
}

var _ pact.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (pact.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of the transaction.
func (tx *Tx) GetMsg() (pact.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "message container is empty")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are not part of it.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	for _, sig := range tx.Signatures {
		w.Message(fieldSignatures, sig)
	}
	if tx.Msg != nil {
		num, ok := msgField(tx.Msg.Path())
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "unsupported message %q", tx.Msg.Path())
		}
		w.Message(num, tx.Msg)
	}
	return w.Result()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num == fieldSignatures {
			sig := new(sigs.StdSignature)
			if err := f.Message(sig); err != nil {
				return err
			}
			tx.Signatures = append(tx.Signatures, sig)
			return nil
		}
		for _, mf := range msgFields {
			if mf.num != f.Num {
				continue
			}
			if tx.Msg != nil {
				return errors.Wrap(errors.ErrInput, "more than one message")
			}
			msg := mf.new()
			if err := f.Message(msg); err != nil {
				return errors.Wrapf(err, "message %d", f.Num)
			}
			tx.Msg = msg
		}
		return nil
	})
}
