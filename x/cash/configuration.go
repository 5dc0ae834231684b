package cash

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/gconf"
)

// confPkg is the gconf package name of the ledger configuration.
const confPkg = "cash"

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	errs = errors.AppendField(errs, "Minter", c.Minter.Validate())
	return errs
}

func (c *Configuration) GetOwner() pact.Address {
	return c.Owner
}

// GetPatch returns the configuration patch carried by the message.
func (m *UpdateConfigurationMsg) GetPatch() gconf.OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
