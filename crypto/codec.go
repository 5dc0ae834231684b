package crypto

import (
	"github.com/iov-one/pact/codec"
)

// PublicKey is a serialized ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// PrivateKey is a serialized ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Signature is a serialized ed25519 signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return codec.NewWriter().Bytes(1, p.Ed25519).Result()
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	*p = PublicKey{}
	return decodeKey(raw, &p.Ed25519)
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return codec.NewWriter().Bytes(1, p.Ed25519).Result()
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	*p = PrivateKey{}
	return decodeKey(raw, &p.Ed25519)
}

func (s *Signature) Marshal() ([]byte, error) {
	return codec.NewWriter().Bytes(1, s.Ed25519).Result()
}

func (s *Signature) Unmarshal(raw []byte) error {
	*s = Signature{}
	return decodeKey(raw, &s.Ed25519)
}

func decodeKey(raw []byte, dest *[]byte) error {
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		var err error
		*dest, err = f.Bytes()
		return err
	})
}
