package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/x/cash"
)

// Ledger is the subset of the asset ledger used by escrow handlers. Every
// error it returns aborts the transition.
type Ledger interface {
	CreateAccount(db pact.KVStore, addr, owner pact.Address, ticker string) (*cash.Account, error)
	Account(db pact.ReadOnlyKVStore, addr pact.Address) (*cash.Account, error)
	Transfer(ctx pact.Context, db pact.KVStore, src, dest pact.Address, amount coin.Coin) error
	CloseAccount(ctx pact.Context, db pact.KVStore, addr, dest pact.Address) error
}

var _ Ledger = cash.Controller(nil)
