/*
Package app links together all the various components
to construct the pactd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/app"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/orm"
	"github.com/iov-one/pact/store/iavl"
	"github.com/iov-one/pact/x"
	"github.com/iov-one/pact/x/cash"
	"github.com/iov-one/pact/x/escrow"
	"github.com/iov-one/pact/x/sigs"
	"github.com/iov-one/pact/x/utils"
)

// keepVersions is the number of committed versions kept on disk.
const keepVersions = 100

// Authenticator returns the authentication used by all handlers: public
// key signatures.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// Controller returns the token ledger. Besides signatures it honours the
// custody authority that only the escrow handlers put into the context.
func Controller() cash.BaseController {
	return cash.NewController(x.ChainAuth(sigs.Authenticate{}, escrow.Authenticate{}))
}

// Chain returns a chain of decorators, to handle authentication,
// logging, tagging and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewKeyTagger(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failed message is rolled back but the signer
		// sequence is still incremented
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns the router dispatching every message supported by the
// node.
func Router(auth x.Authenticator, ctrl cash.BaseController) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, ctrl)
	escrow.RegisterRoutes(r, auth, ctrl)
	sigs.RegisterRoutes(r, auth)
	return r
}

// QueryRouter returns a default query router, allowing access to "/",
// "/auth", "/accounts" and "/escrows".
func QueryRouter() pact.QueryRouter {
	r := pact.NewQueryRouter()
	r.RegisterAll(
		orm.RegisterQuery,
		sigs.RegisterQuery,
		cash.RegisterQuery,
		escrow.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() pact.Handler {
	return Chain().WithHandler(Router(Authenticator(), Controller()))
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() pact.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		escrow.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h pact.Handler, tx pact.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (pact.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name).WithHistory(keepVersions), nil
}
