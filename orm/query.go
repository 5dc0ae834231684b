package orm

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

// prefixRange turns a prefix into a (start, end) range. The end is the
// smallest key that is not prefixed.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	// Prefix is all 0xff bytes, iterate till the end.
	return prefix, nil
}

// queryPrefix returns all models stored under given prefix.
func queryPrefix(db pact.ReadOnlyKVStore, prefix []byte) ([]pact.Model, error) {
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return consumeIterator(it)
}

// consumeIterator will read all remaining data into an array and release
// the iterator.
func consumeIterator(it pact.Iterator) ([]pact.Model, error) {
	defer it.Release()

	var res []pact.Model
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			res = append(res, pact.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// RegisterQuery registers the raw database access under "/". A key query
// returns the value stored under the exact key, a prefix query returns
// everything stored under the prefix.
func RegisterQuery(qr pact.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db pact.ReadOnlyKVStore, mod string, data []byte) ([]pact.Model, error) {
	switch mod {
	case pact.KeyQueryMod:
		val, err := db.Get(data)
		if err != nil || val == nil {
			return nil, err
		}
		return []pact.Model{pact.Pair(data, val)}, nil
	case pact.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}
