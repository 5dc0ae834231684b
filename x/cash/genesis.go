package cash

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/gconf"
)

const optKey = "cash"

// GenesisAccount is a single "cash" genesis entry. When Address is not
// set, the associated account of the owner is created.
type GenesisAccount struct {
	Address pact.Address `json:"address"`
	Owner   pact.Address `json:"owner"`
	Balance coin.Coin    `json:"balance"`
}

// Initializer fulfils the pact.Initializer interface to load accounts and
// the ledger configuration from the genesis file.
type Initializer struct{}

var _ pact.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database. The configuration is optional; without it no coins can be
// minted.
func (Initializer) FromGenesis(opts pact.Options, db pact.KVStore) error {
	if err := gconf.InitConfig(db, opts, confPkg, &Configuration{}); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "configuration")
	}

	next, err := opts.Stream(optKey)
	switch {
	case errors.ErrEmpty.Is(err):
		return nil
	case err != nil:
		return err
	}

	bucket := NewAccountBucket()
	for {
		var ga GenesisAccount
		switch err := next(&ga); {
		case errors.ErrEmpty.Is(err):
			return nil
		case err != nil:
			return errors.Wrap(err, "cannot load account")
		}

		addr := ga.Address
		if len(addr) == 0 {
			if addr, err = AssociatedAddress(ga.Owner, ga.Balance.Ticker); err != nil {
				return err
			}
		}
		acc := &Account{Owner: ga.Owner, Balance: ga.Balance}
		if err := bucket.Put(db, addr, acc); err != nil {
			return errors.Wrapf(err, "cannot save account %s", addr)
		}
	}
}
