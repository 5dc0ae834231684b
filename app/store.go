package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp owns the committed state of the ledger and answers the ABCI
// calls that do not process transactions. BaseApp embeds it to add
// CheckTx and DeliverTx.
//
// Info, InitChain, BeginBlock, EndBlock and Commit cannot report an
// error to tendermint. A failure there leaves the node in an unknown
// state, so those calls panic.
type StoreApp struct {
	name    string
	logger  log.Logger
	store   *CommitStore
	init    pact.Initializer
	queries pact.QueryRouter

	// chainID is persisted by the first InitChain call and read back
	// on every restart.
	chainID string

	// base is valid for the lifetime of the process, block is rebuilt
	// on every BeginBlock.
	base  pact.Context
	block pact.Context
}

// NewStoreApp loads the latest committed version of store. It panics if
// the state cannot be read.
func NewStoreApp(name string, store pact.CommitKVStore, queries pact.QueryRouter, ctx pact.Context) *StoreApp {
	s := &StoreApp{
		name:    name,
		store:   NewCommitStore(store),
		queries: queries,
		base:    ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if id := mustLoadChainID(s.DeliverStore()); id != "" {
		s.chainID = id
		s.base = pact.WithChainID(s.base, id)
	}

	last, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.block = pact.WithHeight(s.base, last.Version)
	return s
}

// GetChainID returns the chain this state belongs to or an empty string
// before genesis.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit registers the genesis loader used by InitChain.
func (s *StoreApp) WithInit(init pact.Initializer) *StoreApp {
	s.init = init
	return s
}

// WithLogger replaces the logger of the application and of every
// context derived from it.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.base = pact.WithLogger(s.base, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() pact.Context {
	return s.block
}

func (s *StoreApp) DeliverStore() pact.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() pact.CacheableKVStore {
	return s.store.CheckStore()
}

// loadGenesis runs once for the lifetime of a chain. Calling it on a
// state that already has a chain id is an error.
func (s *StoreApp) loadGenesis(chainID string, raw []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrImmutable, "genesis already loaded for chain %q", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrEmpty, "genesis has no app_state")
	}
	var opts pact.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	db := s.DeliverStore()
	if err := saveChainID(db, chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.base = pact.WithChainID(s.base, chainID)

	if s.init == nil {
		return nil
	}
	return s.init.FromGenesis(opts, db)
}

// Info reports the last committed height and app hash so tendermint can
// replay missing blocks.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("state loaded", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// InitChain loads the genesis app_state through the registered
// initializer.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := pact.WithHeader(s.base, req.Header)
	s.block = pact.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("block committed", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}
