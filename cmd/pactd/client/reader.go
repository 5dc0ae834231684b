package client

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/app"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/x/cash"
	"github.com/iov-one/pact/x/escrow"
	"github.com/iov-one/pact/x/sigs"
)

// Reader loads typed pact state through any abci querier, either a remote
// node or an in-process application.
type Reader struct {
	store *app.ABCIStore
}

// NewReader wraps the querier.
func NewReader(q app.Querier) *Reader {
	return &Reader{store: app.NewABCIStore(q)}
}

// Accounts returns every token account owned by the address.
func (r *Reader) Accounts(owner pact.Address) ([]pact.Address, []*cash.Account, error) {
	addrs, accounts, err := cash.NewAccountBucket().ByOwner(r.store, owner)
	if errors.ErrNotFound.Is(err) {
		return nil, nil, nil
	}
	return addrs, accounts, err
}

// Balance returns the balance of the owner's associated account for the
// ticker. A missing account holds nothing.
func (r *Reader) Balance(owner pact.Address, ticker string) (coin.Coin, error) {
	addr, err := cash.AssociatedAddress(owner, ticker)
	if err != nil {
		return coin.Coin{}, err
	}
	var acc cash.Account
	switch err := cash.NewAccountBucket().One(r.store, addr, &acc); {
	case errors.ErrNotFound.Is(err):
		return coin.NewCoin(0, ticker), nil
	case err != nil:
		return coin.Coin{}, errors.Wrap(err, "account")
	}
	return acc.Balance, nil
}

// Escrow returns the open escrow stored under the address.
func (r *Reader) Escrow(addr pact.Address) (*escrow.Escrow, error) {
	var e escrow.Escrow
	if err := escrow.NewBucket().One(r.store, addr, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// EscrowsByInitializer lists all open escrows created by the address.
func (r *Reader) EscrowsByInitializer(initializer pact.Address) ([]*escrow.Escrow, error) {
	return escrow.ByInitializer(r.store, initializer)
}

// NextSequence returns the sequence the signer must use for the next
// transaction.
func (r *Reader) NextSequence(signer pact.Address) (int64, error) {
	return sigs.NextNonce(r.store, signer)
}
