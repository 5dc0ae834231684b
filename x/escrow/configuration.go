package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/gconf"
)

const confPkg = "escrow"

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	errs = errors.AppendField(errs, "VaultStrategy", validStrategy(c.VaultStrategy))
	return errs
}

func (c *Configuration) GetOwner() pact.Address {
	return c.Owner
}

func validStrategy(s string) error {
	switch s {
	case VaultBySeed, VaultAssociated:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown vault strategy %q", s)
	}
}

// loadConf returns the stored configuration. Without one, vaults are
// derived from escrow seeds.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{VaultStrategy: VaultBySeed}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
