package cash

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/x"
)

// Controller is the ledger API used by handlers of this and other
// extensions. Operations that take funds out of an account require the
// account owner to be authenticated in the context.
type Controller interface {
	// CreateAccount opens an empty account of given ticker at addr.
	// ErrDuplicate is returned if an account already exists there.
	CreateAccount(db pact.KVStore, addr, owner pact.Address, ticker string) (*Account, error)

	// Account returns the account stored at addr or ErrNotFound.
	Account(db pact.ReadOnlyKVStore, addr pact.Address) (*Account, error)

	// Transfer moves amount between two existing accounts of the same
	// ticker. Insufficient funds result in ErrAmount.
	Transfer(ctx pact.Context, db pact.KVStore, src, dest pact.Address, amount coin.Coin) error

	// CloseAccount deletes the account at addr. Any remaining balance is
	// moved to dest first.
	CloseAccount(ctx pact.Context, db pact.KVStore, addr, dest pact.Address) error

	// Mint issues new coins into an existing account. Authorization is
	// up to the caller.
	Mint(db pact.KVStore, dest pact.Address, amount coin.Coin) error
}

// BaseController is the account bucket backed Controller.
type BaseController struct {
	bucket *AccountBucket
	auth   x.Authenticator
}

var _ Controller = BaseController{}

// NewController returns a controller that checks account ownership with
// given authenticator.
func NewController(auth x.Authenticator) BaseController {
	return BaseController{
		bucket: NewAccountBucket(),
		auth:   auth,
	}
}

func (c BaseController) CreateAccount(db pact.KVStore, addr, owner pact.Address, ticker string) (*Account, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "account address")
	}
	switch err := c.bucket.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	acc := &Account{Owner: owner, Balance: coin.NewCoin(0, ticker)}
	if err := c.bucket.Put(db, addr, acc); err != nil {
		return nil, errors.Wrap(err, "cannot create account")
	}
	return acc, nil
}

func (c BaseController) Account(db pact.ReadOnlyKVStore, addr pact.Address) (*Account, error) {
	var acc Account
	if err := c.bucket.One(db, addr, &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acc, nil
}

func (c BaseController) Transfer(ctx pact.Context, db pact.KVStore, src, dest pact.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	from, err := c.Account(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if !c.auth.HasAddress(ctx, from.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "source account owner %s did not sign", from.Owner)
	}
	to, err := c.Account(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !to.Balance.SameType(amount) {
		return errors.Wrapf(errors.ErrCurrency, "destination holds %s, not %s", to.Balance.Ticker, amount.Ticker)
	}
	if from.Balance, err = from.Balance.Subtract(amount); err != nil {
		return errors.Wrap(err, "source")
	}
	if src.Equals(dest) {
		return nil
	}
	if to.Balance, err = to.Balance.Add(amount); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := c.bucket.Put(db, src, from); err != nil {
		return errors.Wrap(err, "save source")
	}
	if err := c.bucket.Put(db, dest, to); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

func (c BaseController) CloseAccount(ctx pact.Context, db pact.KVStore, addr, dest pact.Address) error {
	acc, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if !c.auth.HasAddress(ctx, acc.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "account owner %s did not sign", acc.Owner)
	}
	if !acc.Balance.IsZero() {
		if addr.Equals(dest) {
			return errors.Wrap(errors.ErrInput, "residual destination is the closed account")
		}
		if err := c.Transfer(ctx, db, addr, dest, acc.Balance); err != nil {
			return errors.Wrap(err, "residual")
		}
	}
	if err := c.bucket.Delete(db, addr); err != nil {
		return errors.Wrap(err, "cannot delete account")
	}
	return nil
}

func (c BaseController) Mint(db pact.KVStore, dest pact.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive mint: %s", amount)
	}
	to, err := c.Account(db, dest)
	if err != nil {
		return err
	}
	if to.Balance, err = to.Balance.Add(amount); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, to)
}
