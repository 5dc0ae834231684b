package pacttest

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/crypto"
	"github.com/stellar/go/exp/crypto/derivation"
)

// NewKey returns a random ed25519 signer.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a random key.
func NewCondition() pact.Condition {
	return NewKey().PublicKey().Condition()
}

// DeriveKey returns a deterministic key derived from a hex encoded master
// seed using SLIP-10 path m/44'/234'/<index>'. Tests that need stable
// addresses across runs use it instead of NewKey.
func DeriveKey(t testing.TB, hexSeed string, index uint32) *crypto.PrivateKey {
	t.Helper()

	seed, err := hex.DecodeString(hexSeed)
	if err != nil {
		t.Fatalf("cannot decode seed: %s", err)
	}
	path := fmt.Sprintf("m/44'/234'/%d'", index)
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		t.Fatalf("cannot derive key using path=%q: %s", path, err)
	}
	return crypto.PrivKeyEd25519FromSeed(k.Key)
}

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) pact.Address {
	raw := make([]byte, pact.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := pact.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not a valid address: %s", err)
	}
	return a
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation.
func ParseAddress(t testing.TB, encodedAddress string) pact.Address {
	t.Helper()

	addr, err := pact.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
