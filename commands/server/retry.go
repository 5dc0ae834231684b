package server

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	iavlstore "github.com/iov-one/pact/store/iavl"
	"github.com/tendermint/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/types"
)

type retryArgs struct {
	blockPath string
	dbPath    string
	debug     bool
	// untilMismatch repeats the replay until the hash differs, at most
	// maxTries times.
	untilMismatch bool
	maxTries      int
}

func parseRetryArgs(home string, args []string) (retryArgs, error) {
	if len(args) == 0 {
		return retryArgs{}, errors.Wrap(errors.ErrInput,
			"usage: retry <block.json> [-db path] [-debug] [-until-mismatch] [-max N]")
	}
	res := retryArgs{blockPath: args[0]}
	fs := flag.NewFlagSet("retry", flag.ContinueOnError)
	fs.SetOutput(ioutil.Discard)
	fs.StringVar(&res.dbPath, "db", filepath.Join(home, "pact.db"), "application state database")
	fs.BoolVar(&res.debug, flagDebug, false, "full error details in responses")
	fs.BoolVar(&res.untilMismatch, "until-mismatch", false, "replay until the app hash differs")
	fs.IntVar(&res.maxTries, "max", 10, "maximum replays with -until-mismatch")
	if err := fs.Parse(args[1:]); err != nil {
		return res, errors.Wrap(errors.ErrInput, err.Error())
	}
	return res, nil
}

// InlineAppGenerator builds the application on top of an open store.
type InlineAppGenerator func(pact.CommitKVStore, log.Logger, bool) abci.Application

// RetryCmd checks that the last block is deterministic. The application
// state is rolled back by one version and the block, as exported by
// getblock, is executed again. The recomputed app hash must match the
// stored one, otherwise ErrState is returned.
func RetryCmd(makeApp InlineAppGenerator, logger log.Logger, home string, args []string) error {
	flags, err := parseRetryArgs(home, args)
	if err != nil {
		return err
	}

	raw, err := ioutil.ReadFile(flags.blockPath)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	var block types.Block
	if err := cdc.UnmarshalJSON(raw, &block); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	tree, err := loadTree(flags.dbPath)
	if err != nil {
		return err
	}
	if v := tree.Version(); v != block.Height {
		return errors.Wrapf(errors.ErrState, "block height %d, state version %d", block.Height, v)
	}

	build := func(kv pact.CommitKVStore) abci.Application {
		return makeApp(kv, logger, flags.debug)
	}
	tries := 1
	if flags.untilMismatch {
		tries = flags.maxTries
	}
	for i := 0; i < tries; i++ {
		same, err := replay(os.Stdout, build, tree, &block)
		if err != nil {
			return err
		}
		if !same {
			return errors.Wrapf(errors.ErrState, "block %d is not deterministic", block.Height)
		}
	}
	return nil
}

func loadTree(path string) (*iavl.MutableTree, error) {
	db, err := openDb(path)
	if err != nil {
		return nil, err
	}
	tree := iavl.NewMutableTree(db, iavlstore.DefaultCacheSize)
	if _, err := tree.LoadVersion(0); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if tree.Version() == 0 {
		return nil, errors.Wrap(errors.ErrState, "state is empty")
	}
	return tree, nil
}

// replay rolls the tree back to the version before the block, executes
// the block and reports whether the resulting hash equals the original.
func replay(out io.Writer, build func(pact.CommitKVStore) abci.Application, tree *iavl.MutableTree, block *types.Block) (bool, error) {
	want := tree.Hash()
	if _, err := tree.LoadVersionForOverwriting(block.Height - 1); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	app := build(iavlstore.NewCommitStoreFromTree(tree))
	app.BeginBlock(abci.RequestBeginBlock{Hash: block.Hash(), Header: toAbciHeader(block.Header)})
	for i, tx := range block.Txs {
		res := app.DeliverTx(tx)
		fmt.Fprintf(out, "tx %d: code=%d %s\n", i, res.Code, res.Log)
	}
	app.EndBlock(abci.RequestEndBlock{Height: block.Height})
	got := app.Commit().Data

	fmt.Fprintf(out, "height %d\nstored hash     %X\nrecomputed hash %X\n", block.Height, want, got)
	return bytes.Equal(want, got), nil
}

func toAbciHeader(h types.Header) abci.Header {
	return abci.Header{
		Version: abci.Version{
			Block: uint64(h.Version.Block),
			App:   uint64(h.Version.App),
		},
		ChainID:  h.ChainID,
		Height:   h.Height,
		Time:     h.Time,
		NumTxs:   h.NumTxs,
		TotalTxs: h.TotalTxs,
		LastBlockId: abci.BlockID{
			Hash: h.LastBlockID.Hash,
			PartsHeader: abci.PartSetHeader{
				Total: int32(h.LastBlockID.PartsHeader.Total),
				Hash:  h.LastBlockID.PartsHeader.Hash,
			},
		},
		LastCommitHash:     h.LastCommitHash,
		DataHash:           h.DataHash,
		ValidatorsHash:     h.ValidatorsHash,
		NextValidatorsHash: h.NextValidatorsHash,
		ConsensusHash:      h.ConsensusHash,
		AppHash:            h.AppHash,
		LastResultsHash:    h.LastResultsHash,
		EvidenceHash:       h.EvidenceHash,
		ProposerAddress:    h.ProposerAddress,
	}
}
