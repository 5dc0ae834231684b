package client

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
	abci "github.com/tendermint/tendermint/abci/types"
)

const chainID = "pact-client-chain"

type node struct {
	app    app.BaseApp
	height int64
}

func newNode(t *testing.T, genesis ...cash.GenesisAccount) *node {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{"cash": genesis})
	assert.Nil(t, err)
	a, err := pactd.Application("pactd", pactd.Stack(), pactd.TxDecoder, "", false)
	assert.Nil(t, err)
	a.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: raw})
	return &node{app: a}
}

// commit signs the tx with the key using the sequence the reader reports
// and delivers it in its own block.
func (n *node) commit(t *testing.T, tx *pactd.Tx, key *crypto.PrivateKey) abci.ResponseDeliverTx {
	t.Helper()
	seq, err := NewReader(n.app).NextSequence(key.PublicKey().Address())
	assert.Nil(t, err)
	assert.Nil(t, SignTx(tx, key, chainID, seq))
	raw, err := tx.Marshal()
	assert.Nil(t, err)

	n.height++
	n.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: n.height, ChainID: chainID}})
	res := n.app.DeliverTx(raw)
	n.app.EndBlock(abci.RequestEndBlock{Height: n.height})
	n.app.Commit()
	return res
}

func TestSwapThroughReader(t *testing.T) {
	maker, taker := crypto.GenPrivKeyEd25519(), crypto.GenPrivKeyEd25519()
	makerAddr, takerAddr := maker.PublicKey().Address(), taker.PublicKey().Address()
	n := newNode(t,
		cash.GenesisAccount{Owner: makerAddr, Balance: coin.NewCoin(100, "ETH")},
		cash.GenesisAccount{Owner: takerAddr, Balance: coin.NewCoin(300, "IOV")},
	)
	r := NewReader(n.app)

	_, accounts, err := r.Accounts(makerAddr)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(accounts))

	open, err := BuildInitializeTx(Swap{
		Seed:        []byte("readswap"),
		Initializer: makerAddr,
		Deposit:     coin.NewCoin(40, "ETH"),
		Price:       coin.NewCoin(120, "IOV"),
	})
	assert.Nil(t, err)
	res := n.commit(t, open, maker)
	assert.Equal(t, uint32(0), res.Code)
	escrowAddr := pact.Address(res.Data)

	e, err := r.Escrow(escrowAddr)
	assert.Nil(t, err)
	assert.Equal(t, uint64(40), e.InitializerAmount)

	listed, err := r.EscrowsByInitializer(makerAddr)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(listed))

	seq, err := r.NextSequence(makerAddr)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	exchange, err := BuildExchangeTx(escrowAddr, e, takerAddr)
	assert.Nil(t, err)
	res = n.commit(t, exchange, taker)
	assert.Equal(t, uint32(0), res.Code)

	balances := []struct {
		owner  pact.Address
		ticker string
		want   uint64
	}{
		{makerAddr, "ETH", 60},
		{makerAddr, "IOV", 120},
		{takerAddr, "ETH", 40},
		{takerAddr, "IOV", 180},
	}
	for _, b := range balances {
		got, err := r.Balance(b.owner, b.ticker)
		assert.Nil(t, err)
		assert.Equal(t, coin.NewCoin(b.want, b.ticker), got)
	}

	_, err = r.Escrow(escrowAddr)
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("settled escrow must be gone, got %+v", err)
	}
	listed, err = r.EscrowsByInitializer(makerAddr)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(listed))
}

func TestCancelThroughReader(t *testing.T) {
	maker := crypto.GenPrivKeyEd25519()
	makerAddr := maker.PublicKey().Address()
	n := newNode(t, cash.GenesisAccount{Owner: makerAddr, Balance: coin.NewCoin(10, "ETH")})
	r := NewReader(n.app)

	open, err := BuildInitializeTx(Swap{
		Seed:        []byte("cancel01"),
		Initializer: makerAddr,
		Deposit:     coin.NewCoin(10, "ETH"),
		Price:       coin.NewCoin(1, "BTC"),
	})
	assert.Nil(t, err)
	res := n.commit(t, open, maker)
	assert.Equal(t, uint32(0), res.Code)

	got, err := r.Balance(makerAddr, "ETH")
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(0, "ETH"), got)

	res = n.commit(t, BuildCancelTx(pact.Address(res.Data)), maker)
	assert.Equal(t, uint32(0), res.Code)

	got, err = r.Balance(makerAddr, "ETH")
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(10, "ETH"), got)
}

func TestBalanceOfMissingAccount(t *testing.T) {
	n := newNode(t)
	got, err := NewReader(n.app).Balance(crypto.GenPrivKeyEd25519().PublicKey().Address(), "ETH")
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(0, "ETH"), got)

	_, err = NewReader(n.app).Balance(nil, "ETH")
	if err == nil {
		t.Fatal("an empty owner must be rejected")
	}
}

func TestNonce(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	addr := key.PublicKey().Address()
	n := newNode(t, cash.GenesisAccount{Owner: addr, Balance: coin.NewCoin(5, "ETH")})
	dest, err := cash.AssociatedAddress(addr, "ETH")
	assert.Nil(t, err)

	res := n.commit(t, BuildSendTx(dest, dest, coin.NewCoin(1, "ETH"), "self"), key)
	assert.Equal(t, uint32(0), res.Code)

	nonce := NewNonce(NewReader(n.app), addr)
	for want := int64(1); want < 4; want++ {
		got, err := nonce.Next()
		assert.Nil(t, err)
		assert.Equal(t, want, got)
	}
	got, err := nonce.Query()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), got)
}

func TestParseTx(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	tx := BuildCancelTx(pact.NewAddress([]byte("escrow")))
	assert.Nil(t, SignTx(tx, key, chainID, 7))
	raw, err := tx.Marshal()
	assert.Nil(t, err)

	got, err := ParseTx(raw)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(got.Signatures))
	assert.Equal(t, int64(7), got.Signatures[0].Sequence)
	msg, err := got.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, "escrow/cancel", msg.Path())

	_, err = ParseTx([]byte{0xff})
	assert.IsErr(t, errors.ErrModel, err)
}
