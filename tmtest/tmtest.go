/*
Package tmtest runs a pact node together with a tendermint process for end
to end tests. Tests are skipped when the binaries are not installed.
*/
package tmtest

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/iov-one/pact/pacttest/assert"
	tmcfg "github.com/tendermint/tendermint/config"
	"github.com/tendermint/tendermint/p2p"
	"github.com/tendermint/tendermint/privval"
	"github.com/tendermint/tendermint/types"
	tmtime "github.com/tendermint/tendermint/types/time"
)

// TestReporter is the minimal subset of testing.TB needed to run these test helpers
type TestReporter interface {
	assert.Tester
	Skipf(string, ...interface{})
	Logf(string, ...interface{})
}

// RunTendermint starts a tendermint process. Returned cleanup function will
// ensure the process has stopped and will block until.
//
// Set FORCE_TM_TEST=1 environment variable to fail the test if the binary is
// not available. This might be desired when running tests by CI.
//
// Set TM_DEBUG=1 environmental variable to output all tm logs
func RunTendermint(ctx context.Context, t TestReporter, home string) (cleanup func()) {
	t.Helper()
	return run(ctx, t, "tendermint", "node", "--home", home)
}

// RunApp is like RunTendermint, but starts the application binary on a
// prepared home directory.
func RunApp(ctx context.Context, t TestReporter, appName string, home string) (cleanup func()) {
	t.Helper()
	return run(ctx, t, appName, "-home", home, "start")
}

func run(ctx context.Context, t TestReporter, name string, args ...string) func() {
	t.Helper()

	path, err := exec.LookPath(name)
	if err != nil {
		if os.Getenv("FORCE_TM_TEST") != "1" {
			t.Skipf("%s binary not found. Set FORCE_TM_TEST=1 to fail this test.", name)
		} else {
			t.Fatalf("%s binary not found. Do not set FORCE_TM_TEST=1 to skip this test.", name)
		}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if os.Getenv("TM_DEBUG") != "" {
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Start(); err != nil {
		t.Fatalf("%s process failed: %s", name, err)
	}

	// Give the process time to setup.
	time.Sleep(2 * time.Second)
	t.Logf("Running %s pid=%d", path, cmd.Process.Pid)

	done := make(chan struct{})
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			t.Logf("%s cleanup called", name)
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			close(done)
		})
		<-done
	}
	go func() {
		select {
		case <-ctx.Done():
			cleanup()
		case <-done:
		}
	}()
	return cleanup
}

// InitHome creates a temporary home directory holding a single validator
// tendermint configuration. The genesis carries the given chain id and
// application state.
//
// second return value is the cleanup call
func InitHome(t assert.Tester, chainID string, appState interface{}) (string, func()) {
	home, err := ioutil.TempDir("", "pact-tmtest")
	assert.Nil(t, err)
	cleanup := func() { os.RemoveAll(home) }

	if err := writeConfig(home, chainID, appState); err != nil {
		cleanup()
		t.Fatalf("Cannot write tendermint configuration: %+v", err)
	}
	return home, cleanup
}

func writeConfig(home, chainID string, appState interface{}) error {
	tmcfg.EnsureRoot(home)
	cfg := tmcfg.DefaultConfig()
	cfg.SetRoot(home)

	pv := privval.GenFilePV(cfg.PrivValidatorKeyFile(), cfg.PrivValidatorStateFile())
	pv.Save()
	if _, err := p2p.LoadOrGenNodeKey(cfg.NodeKeyFile()); err != nil {
		return err
	}

	state, err := json.Marshal(appState)
	if err != nil {
		return err
	}
	pubKey := pv.GetPubKey()
	gen := types.GenesisDoc{
		ChainID:         chainID,
		GenesisTime:     tmtime.Now(),
		ConsensusParams: types.DefaultConsensusParams(),
		Validators: []types.GenesisValidator{{
			Address: pubKey.Address(),
			PubKey:  pubKey,
			Power:   10,
		}},
		AppState: state,
	}
	return gen.SaveAs(cfg.GenesisFile())
}
