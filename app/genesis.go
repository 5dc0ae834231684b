package app

import (
	"github.com/iov-one/pact"
)

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...pact.Initializer) pact.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []pact.Initializer
}

// FromGenesis will pass opts to all Initializers in the list, aborting at
// the first error.
func (c chainInitializer) FromGenesis(opts pact.Options, kv pact.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
