package sigs

import (
	"github.com/iov-one/pact/codec"
	"github.com/iov-one/pact/crypto"
)

// UserData just stores the current sequence and the public key of a
// signer.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (u *UserData) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Message(1, u.Pubkey).
		Int64(2, u.Sequence).
		Result()
}

func (u *UserData) Unmarshal(raw []byte) error {
	*u = UserData{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			u.Pubkey = new(crypto.PublicKey)
			err = f.Message(u.Pubkey)
		case 2:
			u.Sequence, err = f.Int64()
		}
		return err
	})
}

// StdSignature represents the signature, the identity of the signer (the
// Pubkey) and a sequence number to prevent replay attacks.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (s *StdSignature) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Int64(1, s.Sequence).
		Message(2, s.Pubkey).
		Message(4, s.Signature).
		Result()
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	*s = StdSignature{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			s.Sequence, err = f.Int64()
		case 2:
			s.Pubkey = new(crypto.PublicKey)
			err = f.Message(s.Pubkey)
		case 4:
			s.Signature = new(crypto.Signature)
			err = f.Message(s.Signature)
		}
		return err
	})
}

// GetSequence returns the sequence or zero for a nil signature.
func (s *StdSignature) GetSequence() int64 {
	if s == nil {
		return 0
	}
	return s.Sequence
}

// BumpSequenceMsg increments the sequence of the main signer by given
// value. It can be used to invalidate transactions signed but not yet
// submitted.
type BumpSequenceMsg struct {
	Increment uint32 `protobuf:"varint,2,opt,name=increment,proto3" json:"increment,omitempty"`
}

func (m *BumpSequenceMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().Uint64(2, uint64(m.Increment)).Result()
}

func (m *BumpSequenceMsg) Unmarshal(raw []byte) error {
	*m = BumpSequenceMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 2 {
			return nil
		}
		v, err := f.Uint64()
		m.Increment = uint32(v)
		return err
	})
}
