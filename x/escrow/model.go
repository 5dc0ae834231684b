package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/orm"
)

// BucketName is where escrows are stored.
const BucketName = "escrow"

const (
	initializerIndex = "initializer"
	vaultIndex       = "vault"
)

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is valid.
func (e *Escrow) Validate() error {
	var errs error
	if len(e.Seed) != SeedLength {
		errs = errors.AppendField(errs, "Seed", errors.Wrapf(errors.ErrInput, "must be %d bytes", SeedLength))
	}
	errs = errors.AppendField(errs, "Initializer", e.Initializer.Validate())
	errs = errors.AppendField(errs, "DepositTicker", validTicker(e.DepositTicker))
	errs = errors.AppendField(errs, "TakerTicker", validTicker(e.TakerTicker))
	if e.InitializerAmount == 0 {
		errs = errors.AppendField(errs, "InitializerAmount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	if e.TakerAmount == 0 {
		errs = errors.AppendField(errs, "TakerAmount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "InitializerReceive", e.InitializerReceive.Validate())
	errs = errors.AppendField(errs, "InitializerDeposit", e.InitializerDeposit.Validate())
	errs = errors.AppendField(errs, "Vault", e.Vault.Validate())
	if e.Bump > 255 {
		errs = errors.AppendField(errs, "Bump", errors.Wrap(errors.ErrInput, "out of range"))
	}
	return errs
}

// Copy makes a new escrow with the same terms.
func (e *Escrow) Copy() orm.Model {
	return &Escrow{
		Seed:               append([]byte(nil), e.Seed...),
		Initializer:        append(pact.Address(nil), e.Initializer...),
		DepositTicker:      e.DepositTicker,
		TakerTicker:        e.TakerTicker,
		InitializerAmount:  e.InitializerAmount,
		TakerAmount:        e.TakerAmount,
		InitializerReceive: append(pact.Address(nil), e.InitializerReceive...),
		InitializerDeposit: append(pact.Address(nil), e.InitializerDeposit...),
		Vault:              append(pact.Address(nil), e.Vault...),
		Bump:               e.Bump,
	}
}

// Deposit returns the amount locked in the vault.
func (e *Escrow) Deposit() coin.Coin {
	return coin.NewCoin(e.InitializerAmount, e.DepositTicker)
}

// Price returns the amount the taker pays.
func (e *Escrow) Price() coin.Coin {
	return coin.NewCoin(e.TakerAmount, e.TakerTicker)
}

// NewBucket returns a bucket of escrows keyed by their derived address
// and indexed by the initializer and by the vault.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{},
		orm.WithIndex(initializerIndex, idxInitializer, false),
		orm.WithIndex(vaultIndex, idxVault, false),
	)
}

func idxVault(obj orm.Object) ([]byte, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	esc, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "can only take index of Escrow, got %T", obj.Value())
	}
	return esc.Vault, nil
}

func idxInitializer(obj orm.Object) ([]byte, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	esc, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "can only take index of Escrow, got %T", obj.Value())
	}
	return esc.Initializer, nil
}

func validTicker(t string) error {
	if !coin.IsCC(t) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", t)
	}
	return nil
}

// ByInitializer returns all open escrows created by the given address.
func ByInitializer(db pact.ReadOnlyKVStore, initializer pact.Address) ([]*Escrow, error) {
	var escrows []*Escrow
	_, err := NewBucket().ByIndex(db, initializerIndex, initializer, &escrows)
	if errors.ErrNotFound.Is(err) {
		return nil, nil
	}
	return escrows, err
}
