package app

import (
	"strings"

	"github.com/iov-one/pact/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

/*
Query reads from the last committed state.

The request path selects a registered query handler: "/", "/<bucket>"
or "/<bucket>/<index>". Anything after a "?" is passed to the handler as
a modifier, "?prefix" turns the lookup into a prefix scan.

Both Key and Value of the response hold a serialized ResultSet with one
entry per matching model, in the same order.
*/
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(req.Path, '?'); i >= 0 {
		path, mod = req.Path[:i], req.Path[i+1:]
	}
	h := s.queries.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "no query handler for %q", req.Path))
	}

	last, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	// TODO: serve historical heights from the iavl versions kept on disk.
	if req.Height != 0 && req.Height != last.Version {
		return queryError(errors.Wrapf(errors.ErrInput, "only the latest height %d can be queried", last.Version))
	}

	db := s.store.committed.CacheWrap()
	defer db.Discard()

	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	res := abci.ResponseQuery{Height: last.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
