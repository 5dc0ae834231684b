package cash

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/errors"
)

const maxMemoSize = 128

var (
	_ pact.Msg = (*SendMsg)(nil)
	_ pact.Msg = (*CreateAccountMsg)(nil)
	_ pact.Msg = (*MintMsg)(nil)
	_ pact.Msg = (*UpdateConfigurationMsg)(nil)
)

func (SendMsg) Path() string {
	return "cash/send"
}

func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Amount", validAmount(m.Amount))
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "too long"))
	}
	return errs
}

func (CreateAccountMsg) Path() string {
	return "cash/create_account"
}

func (m *CreateAccountMsg) Validate() error {
	var errs error
	if len(m.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	}
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", m.Ticker))
	}
	return errs
}

func (MintMsg) Path() string {
	return "cash/mint"
}

func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Amount", validAmount(m.Amount))
	return errs
}

func (UpdateConfigurationMsg) Path() string {
	return "cash/update_configuration"
}

// Validate checks the set fields only. Zero fields are not changed by the
// patch.
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	var errs error
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	if len(m.Patch.Minter) != 0 {
		errs = errors.AppendField(errs, "Patch.Minter", m.Patch.Minter.Validate())
	}
	return errs
}

func validAmount(c *coin.Coin) error {
	if coin.IsEmpty(c) {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	return c.Validate()
}
