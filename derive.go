package pact

import (
	"crypto/sha256"
	"encoding/binary"
	"regexp"

	"filippo.io/edwards25519"
	"github.com/iov-one/pact/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a derived address can be
	// built from.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32
)

var isSection = regexp.MustCompile(`^[a-zA-Z0-9_\-]{3,12}$`).MatchString

// DerivedCondition returns the condition that a derived address is computed
// from. The condition is of the form
//
//   program/namespace/<len(seed) seed>...<bump>
//
// Every seed is prefixed with its length, so that no two seed lists share
// the same encoding. The condition is returned only if its digest is not a
// valid ed25519 public key, which guarantees that nobody can hold a private
// key for the resulting address.
func DerivedCondition(program, namespace string, bump uint8, seeds ...[]byte) (Condition, error) {
	cond, err := derivedCondition(program, namespace, bump, seeds)
	if err != nil {
		return nil, err
	}
	if onCurve(cond) {
		return nil, errors.Wrap(errors.ErrInput, "derived address is on curve")
	}
	return cond, nil
}

func derivedCondition(program, namespace string, bump uint8, seeds [][]byte) (Condition, error) {
	if !isSection(program) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid program %q", program)
	}
	if !isSection(namespace) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid namespace %q", namespace)
	}
	if len(seeds) > MaxSeeds {
		return nil, errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}

	var data []byte
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, errors.Wrapf(errors.ErrInput, "seed %d too long: %d", i, len(s))
		}
		var prefix [4]byte
		binary.BigEndian.PutUint32(prefix[:], uint32(len(s)))
		data = append(data, prefix[:]...)
		data = append(data, s...)
	}
	data = append(data, bump)
	return NewCondition(program, namespace, data), nil
}

// onCurve returns true if the digest of given condition is a valid
// encoding of an ed25519 point.
func onCurve(c Condition) bool {
	digest := sha256.Sum256(c)
	_, err := new(edwards25519.Point).SetBytes(digest[:])
	return err == nil
}

// CreateDerivedAddress returns the address derived from given program,
// namespace, bump and seeds. It fails if the combination lands on the
// ed25519 curve.
func CreateDerivedAddress(program, namespace string, bump uint8, seeds ...[]byte) (Address, error) {
	cond, err := DerivedCondition(program, namespace, bump, seeds...)
	if err != nil {
		return nil, err
	}
	return cond.Address(), nil
}

// Derive finds the canonical derived address for given program, namespace
// and seeds. Bumps are tried from 255 down to 0 and the first one that
// yields an off-curve digest is returned together with the address.
//
// The result is a pure function of the input.
func Derive(program, namespace string, seeds ...[]byte) (Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		cond, err := derivedCondition(program, namespace, uint8(bump), seeds)
		if err != nil {
			return nil, 0, err
		}
		if !onCurve(cond) {
			return cond.Address(), uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrState, "no viable bump found")
}
