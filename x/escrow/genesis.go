package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/gconf"
)

// Initializer fulfils the pact.Initializer interface to load the escrow
// configuration from the genesis file.
type Initializer struct{}

var _ pact.Initializer = Initializer{}

// FromGenesis stores the "conf"."escrow" section if present. Escrows are
// never part of the genesis.
func (Initializer) FromGenesis(opts pact.Options, db pact.KVStore) error {
	err := gconf.InitConfig(db, opts, confPkg, &Configuration{})
	if err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "configuration")
	}
	return nil
}
