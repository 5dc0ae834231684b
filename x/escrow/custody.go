package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/x/cash"
)

const (
	// SeedLength is the exact length of an escrow seed.
	SeedLength = 8

	program = "escrow"

	stateNamespace     = "state"
	authorityNamespace = "authority"
	vaultNamespace     = "vault"
)

// Vault strategies.
const (
	// VaultBySeed derives a separate vault for every escrow seed.
	VaultBySeed = "seed"
	// VaultAssociated uses the associated account of the custody
	// authority and the deposit ticker. It is shared by all escrows of
	// that ticker, so only one of them can be open at a time.
	VaultAssociated = "associated"
)

// EscrowAddress returns the address an escrow with given seed is stored
// under.
func EscrowAddress(seed []byte) (pact.Address, error) {
	if len(seed) != SeedLength {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", SeedLength)
	}
	addr, _, err := pact.Derive(program, stateNamespace, seed)
	return addr, err
}

// Authority returns the address of the custody authority and its bump.
func Authority() (pact.Address, uint8, error) {
	return pact.Derive(program, authorityNamespace)
}

// authorityCondition rebuilds the custody authority condition from a bump
// stored with an escrow.
func authorityCondition(bump uint32) (pact.Condition, error) {
	if bump > 255 {
		return nil, errors.Wrapf(errors.ErrState, "bump %d out of range", bump)
	}
	cond, err := pact.DerivedCondition(program, authorityNamespace, uint8(bump))
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	return cond, nil
}

// VaultAddress returns the address of the vault for an escrow, according
// to the strategy.
func VaultAddress(strategy string, seed []byte, authority pact.Address, ticker string) (pact.Address, error) {
	switch strategy {
	case VaultBySeed, "":
		addr, _, err := pact.Derive(program, vaultNamespace, seed)
		return addr, err
	case VaultAssociated:
		return cash.AssociatedAddress(authority, ticker)
	default:
		return nil, errors.Wrapf(errors.ErrState, "unknown vault strategy %q", strategy)
	}
}
