package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// setupHome creates a home directory with a genesis file as written by
// tendermint init.
func setupHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "pact-init")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(home, dirConfig), 0755))
	genesis := `{"genesis_time": "2019-05-01T00:00:00Z", "chain_id": "test-chain-AbCdEf", "app_hash": ""}`
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, dirConfig, genesisFile), []byte(genesis), 0600))
	return home, func() { os.RemoveAll(home) }
}

func genTicker(args []string) (json.RawMessage, error) {
	ticker := "IOV"
	if len(args) > 0 {
		ticker = args[0]
	}
	return json.Marshal(map[string]string{"ticker": ticker})
}

func appState(t *testing.T, home string) pact.Options {
	t.Helper()
	doc, err := readGenesis(filepath.Join(home, dirConfig, genesisFile))
	require.NoError(t, err)
	assert.Equal(t, `"test-chain-AbCdEf"`, string(doc["chain_id"]))
	var opts pact.Options
	require.NoError(t, json.Unmarshal(doc[appStateKey], &opts))
	return opts
}

func TestInitCmd(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()
	logger := log.NewNopLogger()

	require.NoError(t, InitCmd(genTicker, logger, home, nil))
	var ticker string
	require.NoError(t, appState(t, home).ReadOptions("ticker", &ticker))
	assert.Equal(t, "IOV", ticker)

	err := InitCmd(genTicker, logger, home, []string{"ETH"})
	assert.True(t, errors.ErrImmutable.Is(err), "got %+v", err)

	require.NoError(t, InitCmd(genTicker, logger, home, []string{"-f", "ETH"}))
	require.NoError(t, appState(t, home).ReadOptions("ticker", &ticker))
	assert.Equal(t, "ETH", ticker)
}

func TestInitCmdRequiresGenesis(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	err := InitCmd(genTicker, log.NewNopLogger(), filepath.Join(home, "missing"), nil)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	err = InitCmd(genTicker, log.NewNopLogger(), home, []string{"-unknown"})
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
}

func TestInitCmdGeneratorFailure(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	fail := func([]string) (json.RawMessage, error) {
		return nil, errors.Wrap(errors.ErrCurrency, "bad ticker")
	}
	err := InitCmd(fail, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrCurrency.Is(err), "got %+v", err)
}
