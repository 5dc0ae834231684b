package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/gconf"
)

const (
	pathInitializeMsg          = "escrow/initialize"
	pathExchangeMsg            = "escrow/exchange"
	pathCancelMsg              = "escrow/cancel"
	pathUpdateConfigurationMsg = "escrow/update_configuration"
)

var (
	_ pact.Msg = (*InitializeMsg)(nil)
	_ pact.Msg = (*ExchangeMsg)(nil)
	_ pact.Msg = (*CancelMsg)(nil)
	_ pact.Msg = (*UpdateConfigurationMsg)(nil)
)

func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

// Validate rejects malformed seeds, non-positive amounts and invalid
// addresses or tickers.
func (m *InitializeMsg) Validate() error {
	var errs error
	if len(m.Seed) != SeedLength {
		errs = errors.AppendField(errs, "Seed", errors.Wrapf(errors.ErrInput, "must be %d bytes", SeedLength))
	}
	if len(m.Initializer) != 0 {
		errs = errors.AppendField(errs, "Initializer", m.Initializer.Validate())
	}
	errs = errors.AppendField(errs, "InitializerDeposit", m.InitializerDeposit.Validate())
	errs = errors.AppendField(errs, "InitializerReceive", m.InitializerReceive.Validate())
	errs = errors.AppendField(errs, "DepositTicker", validTicker(m.DepositTicker))
	errs = errors.AppendField(errs, "TakerTicker", validTicker(m.TakerTicker))
	if m.InitializerAmount == 0 {
		errs = errors.AppendField(errs, "InitializerAmount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	if m.TakerAmount == 0 {
		errs = errors.AppendField(errs, "TakerAmount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	return errs
}

func (ExchangeMsg) Path() string {
	return pathExchangeMsg
}

func (m *ExchangeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	if len(m.Taker) != 0 {
		errs = errors.AppendField(errs, "Taker", m.Taker.Validate())
	}
	errs = errors.AppendField(errs, "TakerDeposit", m.TakerDeposit.Validate())
	errs = errors.AppendField(errs, "TakerReceive", m.TakerReceive.Validate())
	errs = errors.AppendField(errs, "InitializerReceive", m.InitializerReceive.Validate())
	return errs
}

func (CancelMsg) Path() string {
	return pathCancelMsg
}

func (m *CancelMsg) Validate() error {
	return errors.Field("Escrow", m.Escrow.Validate(), "")
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate checks the set fields only.
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	var errs error
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	if m.Patch.VaultStrategy != "" {
		errs = errors.AppendField(errs, "Patch.VaultStrategy", validStrategy(m.Patch.VaultStrategy))
	}
	return errs
}

func (m *UpdateConfigurationMsg) GetPatch() gconf.OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}
