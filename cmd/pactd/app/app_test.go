package app_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/app"
	pactd "github.com/iov-one/pact/cmd/pactd/app"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/crypto"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/x/cash"
	"github.com/iov-one/pact/x/escrow"
	"github.com/iov-one/pact/x/sigs"
	abci "github.com/tendermint/tendermint/abci/types"
)

const chainID = "pact-e2e-chain"

type user struct {
	key *crypto.PrivateKey
	seq int64
}

func newUser() *user {
	return &user{key: crypto.GenPrivKeyEd25519()}
}

func (u *user) addr() pact.Address {
	return u.key.PublicKey().Address()
}

func (u *user) account(t testing.TB, ticker string) pact.Address {
	t.Helper()
	addr, err := cash.AssociatedAddress(u.addr(), ticker)
	assert.Nil(t, err)
	return addr
}

type chain struct {
	app    app.BaseApp
	height int64
}

func newChain(t testing.TB, state map[string]interface{}) *chain {
	t.Helper()
	raw, err := json.Marshal(state)
	assert.Nil(t, err)
	return newChainFromGenesis(t, raw)
}

func newChainFromGenesis(t testing.TB, raw []byte) *chain {
	t.Helper()
	application, err := pactd.Application("pactd", pactd.Stack(), pactd.TxDecoder, "", false)
	assert.Nil(t, err)
	application.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: raw})
	return &chain{app: application}
}

// block delivers signed messages in a new block and commits it.
func (c *chain) block(t testing.TB, signer *user, msgs ...pact.Msg) []abci.ResponseDeliverTx {
	t.Helper()
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: c.height, ChainID: chainID}})
	var res []abci.ResponseDeliverTx
	for _, msg := range msgs {
		res = append(res, c.app.DeliverTx(signer.sign(t, msg)))
	}
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	return res
}

func (u *user) sign(t testing.TB, msg pact.Msg) []byte {
	t.Helper()
	tx := &pactd.Tx{Msg: msg}
	sig, err := sigs.SignTx(u.key, tx, chainID, u.seq)
	assert.Nil(t, err)
	u.seq++
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := tx.Marshal()
	assert.Nil(t, err)
	return raw
}

func (c *chain) balance(t testing.TB, addr pact.Address) *coin.Coin {
	t.Helper()
	var acc cash.Account
	err := cash.NewAccountBucket().One(app.NewABCIStore(c.app), addr, &acc)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	assert.Nil(t, err)
	return &acc.Balance
}

func TestSwapLifecycle(t *testing.T) {
	alice, bob := newUser(), newUser()
	c := newChain(t, map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Owner: alice.addr(), Balance: coin.NewCoin(1000, "ETH")},
			{Owner: bob.addr(), Balance: coin.NewCoin(2000, "IOV")},
		},
	})

	seed := []byte("swap0001")
	authority, _, err := escrow.Authority()
	assert.Nil(t, err)
	vault, err := escrow.VaultAddress(escrow.VaultBySeed, seed, authority, "ETH")
	assert.Nil(t, err)

	res := c.block(t, alice,
		&escrow.InitializeMsg{
			Seed:               seed,
			InitializerDeposit: alice.account(t, "ETH"),
			InitializerReceive: alice.account(t, "IOV"),
			DepositTicker:      "ETH",
			TakerTicker:        "IOV",
			InitializerAmount:  500,
			TakerAmount:        1000,
		},
		// The vault cannot be spent by its creator.
		&cash.SendMsg{
			Source:      vault,
			Destination: alice.account(t, "ETH"),
			Amount:      coin.NewCoinp(500, "ETH"),
		},
	)
	assert.Equal(t, uint32(0), res[0].Code)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res[1].Code)

	escrowAddr := pact.Address(res[0].Data)
	var e escrow.Escrow
	assert.Nil(t, escrow.NewBucket().One(app.NewABCIStore(c.app), escrowAddr, &e))
	assert.Equal(t, vault, e.Vault)
	assert.Equal(t, coin.NewCoinp(500, "ETH"), c.balance(t, vault))
	assert.Equal(t, coin.NewCoinp(500, "ETH"), c.balance(t, alice.account(t, "ETH")))

	exchange := &escrow.ExchangeMsg{
		Escrow:             escrowAddr,
		TakerDeposit:       bob.account(t, "IOV"),
		TakerReceive:       bob.account(t, "ETH"),
		InitializerReceive: alice.account(t, "IOV"),
	}
	res = c.block(t, bob, exchange)
	assert.Equal(t, uint32(0), res[0].Code)

	assert.Equal(t, coin.NewCoinp(1000, "IOV"), c.balance(t, alice.account(t, "IOV")))
	assert.Equal(t, coin.NewCoinp(500, "ETH"), c.balance(t, bob.account(t, "ETH")))
	assert.Equal(t, coin.NewCoinp(1000, "IOV"), c.balance(t, bob.account(t, "IOV")))
	assert.Equal(t, (*coin.Coin)(nil), c.balance(t, vault))
	err = escrow.NewBucket().One(app.NewABCIStore(c.app), escrowAddr, &e)
	assert.IsErr(t, errors.ErrNotFound, err)

	// A settled escrow cannot be settled again.
	res = c.block(t, bob, exchange)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res[0].Code)
}

func TestReplayedTransactionIsRejected(t *testing.T) {
	alice := newUser()
	c := newChain(t, map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Owner: alice.addr(), Balance: coin.NewCoin(1000, "ETH")},
		},
	})

	raw := alice.sign(t, &escrow.InitializeMsg{
		Seed:               []byte("swap0002"),
		InitializerDeposit: alice.account(t, "ETH"),
		InitializerReceive: alice.account(t, "IOV"),
		DepositTicker:      "ETH",
		TakerTicker:        "IOV",
		InitializerAmount:  100,
		TakerAmount:        10,
	})
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, ChainID: chainID}})
	assert.Equal(t, uint32(0), c.app.DeliverTx(raw).Code)
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), c.app.DeliverTx(raw).Code)
	c.app.EndBlock(abci.RequestEndBlock{Height: 1})
	c.app.Commit()

	assert.Equal(t, coin.NewCoinp(900, "ETH"), c.balance(t, alice.account(t, "ETH")))
}

func TestGenInitOptions(t *testing.T) {
	owner := newUser()
	raw, err := pactd.GenInitOptions([]string{"ETH", "IOV", owner.addr().String()})
	assert.Nil(t, err)

	c := newChainFromGenesis(t, raw)
	for _, ticker := range []string{"ETH", "IOV"} {
		assert.Equal(t, coin.NewCoinp(123456789, ticker), c.balance(t, owner.account(t, ticker)))
	}

	// The generated configuration lets the owner mint.
	res := c.block(t, owner, &cash.MintMsg{
		Destination: owner.account(t, "ETH"),
		Amount:      coin.NewCoinp(1, "ETH"),
	})
	assert.Equal(t, uint32(0), res[0].Code)
	assert.Equal(t, coin.NewCoinp(123456790, "ETH"), c.balance(t, owner.account(t, "ETH")))

	_, err = pactd.GenInitOptions([]string{"not an address"})
	assert.IsErr(t, errors.ErrInput, err)
}
