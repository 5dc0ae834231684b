package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/app"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/crypto"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/x/cash"
	"github.com/iov-one/pact/x/escrow"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const initialBalance = 123456789

// GenInitOptions produces the app_state for a development chain: one rich
// associated account for every given ticker, all owned by the same key.
//
// Arguments are an optional list of tickers (default "IOV") followed by
// an optional hex encoded owner address. Without an address a new key is
// generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var (
		tickers []string
		owner   pact.Address
	)
	for _, arg := range args {
		if coin.IsCC(arg) {
			tickers = append(tickers, arg)
			continue
		}
		addr, err := pact.ParseAddress(arg)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "neither ticker nor address: %q", arg)
		}
		owner = addr
	}
	if len(tickers) == 0 {
		tickers = []string{"IOV"}
	}
	if owner == nil {
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		owner = addr
		fmt.Println(keys)
	}

	accounts := make([]cash.GenesisAccount, 0, len(tickers))
	for _, t := range tickers {
		accounts = append(accounts, cash.GenesisAccount{
			Owner:   owner,
			Balance: coin.NewCoin(initialBalance, t),
		})
	}
	state := map[string]interface{}{
		"cash": accounts,
		"conf": map[string]interface{}{
			"cash": cash.Configuration{
				Owner:  owner,
				Minter: owner,
			},
			"escrow": escrow.Configuration{
				Owner:         owner,
				VaultStrategy: escrow.VaultBySeed,
			},
		},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "pact.db")
	}

	application, err := Application("pactd", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

// InlineApp builds the application on top of an already opened store. It
// is used to replay blocks.
func InlineApp(kv pact.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	store := app.NewStoreApp("pactd", kv, QueryRouter(), context.Background()).
		WithInit(Initializers())
	store.WithLogger(logger)
	return app.NewBaseApp(store, TxDecoder, Stack(), debug)
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
func GenerateCoinKey() (pact.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return pubKey.Address(), string(keys), nil
}
