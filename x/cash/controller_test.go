package cash

import (
	"context"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest"
	"github.com/iov-one/pact/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerTransfer(t *testing.T) {
	alice := pacttest.NewCondition()
	bob := pacttest.NewCondition()

	aliceIOV := pacttest.RandomAddr(t)
	bobIOV := pacttest.RandomAddr(t)
	bobETH := pacttest.RandomAddr(t)

	cases := map[string]struct {
		signers   []pact.Condition
		src, dest pact.Address
		amount    coin.Coin
		wantErr   *errors.Error
		wantSrc   uint64
		wantDest  uint64
	}{
		"success": {
			signers:  []pact.Condition{alice},
			src:      aliceIOV,
			dest:     bobIOV,
			amount:   coin.NewCoin(40, "IOV"),
			wantSrc:  60,
			wantDest: 45,
		},
		"whole balance": {
			signers:  []pact.Condition{alice},
			src:      aliceIOV,
			dest:     bobIOV,
			amount:   coin.NewCoin(100, "IOV"),
			wantSrc:  0,
			wantDest: 105,
		},
		"insufficient funds": {
			signers: []pact.Condition{alice},
			src:     aliceIOV,
			dest:    bobIOV,
			amount:  coin.NewCoin(101, "IOV"),
			wantErr: errors.ErrAmount,
		},
		"owner must sign": {
			signers: []pact.Condition{bob},
			src:     aliceIOV,
			dest:    bobIOV,
			amount:  coin.NewCoin(1, "IOV"),
			wantErr: errors.ErrUnauthorized,
		},
		"destination of a different ticker": {
			signers: []pact.Condition{alice},
			src:     aliceIOV,
			dest:    bobETH,
			amount:  coin.NewCoin(1, "IOV"),
			wantErr: errors.ErrCurrency,
		},
		"amount of a different ticker": {
			signers: []pact.Condition{alice},
			src:     aliceIOV,
			dest:    bobIOV,
			amount:  coin.NewCoin(1, "ETH"),
			wantErr: errors.ErrCurrency,
		},
		"missing destination": {
			signers: []pact.Condition{alice},
			src:     aliceIOV,
			dest:    pacttest.RandomAddr(t),
			amount:  coin.NewCoin(1, "IOV"),
			wantErr: errors.ErrNotFound,
		},
		"missing source": {
			signers: []pact.Condition{alice},
			src:     pacttest.RandomAddr(t),
			dest:    bobIOV,
			amount:  coin.NewCoin(1, "IOV"),
			wantErr: errors.ErrNotFound,
		},
		"zero amount": {
			signers: []pact.Condition{alice},
			src:     aliceIOV,
			dest:    bobIOV,
			amount:  coin.NewCoin(0, "IOV"),
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			auth := &pacttest.Auth{Signers: tc.signers}
			ctrl := NewController(auth)

			mustCreate(t, ctrl, db, aliceIOV, alice.Address(), coin.NewCoin(100, "IOV"))
			mustCreate(t, ctrl, db, bobIOV, bob.Address(), coin.NewCoin(5, "IOV"))
			mustCreate(t, ctrl, db, bobETH, bob.Address(), coin.NewCoin(0, "ETH"))

			err := ctrl.Transfer(context.Background(), db, tc.src, tc.dest, tc.amount)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				assertBalance(t, ctrl, db, aliceIOV, 100)
				assertBalance(t, ctrl, db, bobIOV, 5)
				return
			}
			require.NoError(t, err)
			assertBalance(t, ctrl, db, tc.src, tc.wantSrc)
			assertBalance(t, ctrl, db, tc.dest, tc.wantDest)
		})
	}
}

func TestControllerTransferToSelf(t *testing.T) {
	alice := pacttest.NewCondition()
	addr := pacttest.RandomAddr(t)
	db := store.MemStore()
	ctrl := NewController(&pacttest.Auth{Signer: alice})
	mustCreate(t, ctrl, db, addr, alice.Address(), coin.NewCoin(10, "IOV"))

	require.NoError(t, ctrl.Transfer(context.Background(), db, addr, addr, coin.NewCoin(7, "IOV")))
	assertBalance(t, ctrl, db, addr, 10)

	err := ctrl.Transfer(context.Background(), db, addr, addr, coin.NewCoin(11, "IOV"))
	assert.True(t, errors.ErrAmount.Is(err))
}

func TestControllerCreateAccount(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(&pacttest.Auth{})
	owner := pacttest.RandomAddr(t)
	addr := pacttest.RandomAddr(t)

	acc, err := ctrl.CreateAccount(db, addr, owner, "IOV")
	require.NoError(t, err)
	assert.Equal(t, coin.NewCoin(0, "IOV"), acc.Balance)

	_, err = ctrl.CreateAccount(db, addr, owner, "IOV")
	assert.True(t, errors.ErrDuplicate.Is(err))

	_, err = ctrl.CreateAccount(db, pacttest.RandomAddr(t), owner, "invalid")
	assert.True(t, errors.ErrCurrency.Is(err))

	_, err = ctrl.CreateAccount(db, pacttest.RandomAddr(t), pact.Address("short"), "IOV")
	assert.True(t, errors.ErrInput.Is(err))

	_, err = ctrl.CreateAccount(db, pact.Address("short"), owner, "IOV")
	assert.True(t, errors.ErrInput.Is(err))

	got, err := ctrl.Account(db, addr)
	require.NoError(t, err)
	assert.Equal(t, acc, got)
}

func TestControllerCloseAccount(t *testing.T) {
	alice := pacttest.NewCondition()
	vault := pacttest.RandomAddr(t)
	refund := pacttest.RandomAddr(t)

	cases := map[string]struct {
		signer  pact.Condition
		balance uint64
		dest    pact.Address
		wantErr *errors.Error
	}{
		"empty account": {
			signer: alice,
			dest:   refund,
		},
		"residual is moved": {
			signer:  alice,
			balance: 42,
			dest:    refund,
		},
		"residual cannot go to a missing account": {
			signer:  alice,
			balance: 42,
			dest:    pacttest.RandomAddr(t),
			wantErr: errors.ErrNotFound,
		},
		"residual cannot stay in the closed account": {
			signer:  alice,
			balance: 42,
			dest:    vault,
			wantErr: errors.ErrInput,
		},
		"owner must sign": {
			signer:  pacttest.NewCondition(),
			dest:    refund,
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(&pacttest.Auth{Signer: tc.signer})
			mustCreate(t, ctrl, db, vault, alice.Address(), coin.NewCoin(tc.balance, "IOV"))
			mustCreate(t, ctrl, db, refund, alice.Address(), coin.NewCoin(1, "IOV"))

			err := ctrl.CloseAccount(context.Background(), db, vault, tc.dest)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				assertBalance(t, ctrl, db, vault, tc.balance)
				return
			}
			require.NoError(t, err)
			_, err = ctrl.Account(db, vault)
			assert.True(t, errors.ErrNotFound.Is(err))
			assertBalance(t, ctrl, db, refund, 1+tc.balance)
		})
	}
}

func TestControllerMint(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(&pacttest.Auth{})
	addr := pacttest.RandomAddr(t)
	mustCreate(t, ctrl, db, addr, pacttest.RandomAddr(t), coin.NewCoin(1, "IOV"))

	require.NoError(t, ctrl.Mint(db, addr, coin.NewCoin(9, "IOV")))
	assertBalance(t, ctrl, db, addr, 10)

	assert.True(t, errors.ErrCurrency.Is(ctrl.Mint(db, addr, coin.NewCoin(9, "ETH"))))
	assert.True(t, errors.ErrAmount.Is(ctrl.Mint(db, addr, coin.NewCoin(0, "IOV"))))
	assert.True(t, errors.ErrNotFound.Is(ctrl.Mint(db, pacttest.RandomAddr(t), coin.NewCoin(1, "IOV"))))
	assert.True(t, errors.ErrOverflow.Is(ctrl.Mint(db, addr, coin.NewCoin(^uint64(0), "IOV"))))
}

// mustCreate opens an account and sets its balance.
func mustCreate(t testing.TB, ctrl BaseController, db pact.KVStore, addr, owner pact.Address, balance coin.Coin) {
	t.Helper()
	_, err := ctrl.CreateAccount(db, addr, owner, balance.Ticker)
	require.NoError(t, err)
	if balance.IsPositive() {
		require.NoError(t, ctrl.Mint(db, addr, balance))
	}
}

func assertBalance(t testing.TB, ctrl BaseController, db pact.ReadOnlyKVStore, addr pact.Address, want uint64) {
	t.Helper()
	acc, err := ctrl.Account(db, addr)
	require.NoError(t, err)
	assert.Equal(t, want, acc.Balance.Amount)
}
