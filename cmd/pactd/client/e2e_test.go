package client

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/client"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/crypto"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/tmtest"
	"github.com/iov-one/pact/x/cash"
)

// TestSwapOnTendermint requires both pactd and tendermint binaries in the
// PATH.
func TestSwapOnTendermint(t *testing.T) {
	maker, taker := crypto.GenPrivKeyEd25519(), crypto.GenPrivKeyEd25519()
	makerAddr, takerAddr := maker.PublicKey().Address(), taker.PublicKey().Address()

	home, cleanup := tmtest.InitHome(t, "pact-tm-chain", map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Owner: makerAddr, Balance: coin.NewCoin(50, "ETH")},
			{Owner: takerAddr, Balance: coin.NewCoin(90, "IOV")},
		},
	})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	defer tmtest.RunApp(ctx, t, "pactd", home)()
	defer tmtest.RunTendermint(ctx, t, home)()

	c := NewPactClient(client.NewHTTPConnection(DefaultNode))
	_, err := c.WaitForNextBlock(ctx)
	assert.Nil(t, err)
	chainID, err := c.ChainID()
	assert.Nil(t, err)
	assert.Equal(t, "pact-tm-chain", chainID)

	open, err := BuildInitializeTx(Swap{
		Seed:        []byte("tmswap01"),
		Initializer: makerAddr,
		Deposit:     coin.NewCoin(50, "ETH"),
		Price:       coin.NewCoin(90, "IOV"),
	})
	assert.Nil(t, err)
	res, err := c.SignAndCommit(ctx, open, maker, chainID)
	assert.Nil(t, err)
	escrowAddr := pact.Address(res.Data)

	e, err := c.Escrow(escrowAddr)
	assert.Nil(t, err)
	exchange, err := BuildExchangeTx(escrowAddr, e, takerAddr)
	assert.Nil(t, err)
	_, err = c.SignAndCommit(ctx, exchange, taker, chainID)
	assert.Nil(t, err)

	got, err := c.Balance(makerAddr, "IOV")
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(90, "IOV"), got)
	got, err = c.Balance(takerAddr, "ETH")
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(50, "ETH"), got)

	// The escrow is closed, a second exchange fails with its code.
	again, err := BuildExchangeTx(escrowAddr, e, takerAddr)
	assert.Nil(t, err)
	_, err = c.SignAndCommit(ctx, again, taker, chainID)
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}
