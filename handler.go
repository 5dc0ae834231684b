package pact

import (
	"encoding/json"

	"github.com/iov-one/pact/errors"
)

// Handler is a core engine that can process a few specific messages. This
// could represent "open an escrow", or "transfer tokens".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication or logging to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of a
// Router.
type Registry interface {
	Handle(path string, h Handler)
}

// Options are the app options. Each extension can look up its key and
// parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the
// json into the given obj. Returns an error if it cannot parse. Noop and no
// error if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q options: %s", key, err)
	}
	return nil
}

// Stream expects an array of json elements under given key and allows
// to decode them one by one. Returned function decodes the next element
// into given destination. It returns ErrEmpty once all elements were
// consumed and ErrState on every call after that.
func (o Options) Stream(key string) (func(dest interface{}) error, error) {
	raw := o[key]
	if len(raw) == 0 {
		return nil, errors.Wrapf(errors.ErrEmpty, "no %q options", key)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "%q options must be a list: %s", key, err)
	}

	var done bool
	return func(dest interface{}) error {
		if done {
			return errors.Wrap(errors.ErrState, "stream is closed")
		}
		if len(elems) == 0 {
			done = true
			return errors.ErrEmpty
		}
		next := elems[0]
		elems = elems[1:]
		if err := json.Unmarshal(next, dest); err != nil {
			return errors.Wrapf(errors.ErrInput, "cannot decode %q element: %s", key, err)
		}
		return nil
	}, nil
}

// Initializer implementations are used to initialize extensions from
// genesis file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
