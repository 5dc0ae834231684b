package cash

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/orm"
)

const (
	// BucketName is where the accounts are stored.
	BucketName = "cash"

	// ownerIndex lists all accounts of a single owner.
	ownerIndex = "owner"

	program             = "cash"
	associatedNamespace = "associated"
)

var _ orm.Model = (*Account)(nil)

// Validate requires an owner and a valid ticker. A zero balance is valid.
func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	errs = errors.AppendField(errs, "Balance", a.Balance.Validate())
	return errs
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() orm.Model {
	return &Account{
		Owner:   append(pact.Address(nil), a.Owner...),
		Balance: *a.Balance.Clone(),
	}
}

// AccountBucket stores accounts by address and indexes them by owner.
type AccountBucket struct {
	orm.ModelBucket
}

// NewAccountBucket returns a bucket for managing accounts.
func NewAccountBucket() *AccountBucket {
	b := orm.NewModelBucket(BucketName, &Account{},
		orm.WithIndex(ownerIndex, ownerIndexer, false),
	)
	return &AccountBucket{ModelBucket: b}
}

// ByOwner returns addresses and accounts owned by given address.
func (b *AccountBucket) ByOwner(db pact.ReadOnlyKVStore, owner pact.Address) ([]pact.Address, []*Account, error) {
	var accounts []*Account
	keys, err := b.ByIndex(db, ownerIndex, owner, &accounts)
	if err != nil {
		return nil, nil, err
	}
	addrs := make([]pact.Address, len(keys))
	for i, k := range keys {
		addrs[i] = k
	}
	return addrs, accounts, nil
}

func ownerIndexer(obj orm.Object) ([]byte, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	acc, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrState, "expected account, got %T", obj.Value())
	}
	return acc.Owner, nil
}

// AssociatedAddress returns the canonical account address of given owner
// for a ticker. Nobody holds a private key for it.
func AssociatedAddress(owner pact.Address, ticker string) (pact.Address, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	addr, _, err := pact.Derive(program, associatedNamespace, owner, []byte(ticker))
	if err != nil {
		return nil, errors.Wrap(err, "derive associated address")
	}
	return addr, nil
}
