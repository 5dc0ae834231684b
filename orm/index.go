package orm

import (
	"bytes"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

// Index is a secondary index of a bucket.
type Index interface {
	// Name returns the name of this index.
	Name() string

	// Update updates the index. It must be called when any of the bucket
	// entities has changed in the store.
	//
	// prev == nil means insert
	// save == nil means delete
	// if both != nil and prev.Key() != save.Key() this is an error
	Update(db pact.KVStore, prev Object, save Object) error

	// Keys returns an iterator over all entity keys that were indexed
	// under given value. Values of returned iterator are always nil.
	Keys(db pact.ReadOnlyKVStore, value []byte) pact.Iterator

	// Query handles queries from the QueryRouter.
	Query(db pact.ReadOnlyKVStore, mod string, data []byte) ([]pact.Model, error)
}

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given object.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given object.
type MultiKeyIndexer func(Object) ([][]byte, error)

// compactIndex stores all entities indexed under a value as a set,
// serialized and stored under a single key. The value is one primary key
// (unique), or a MultiRef of primary keys (non unique). It fits indexes
// with a small number of entries per value, like open escrows of one
// party.
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ Index = compactIndex{}

// NewMultiKeyIndex constructs an index with multi key indexer. unique
// enforces a unique constraint on the index, refKey calculates the
// absolute db key for a reference.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return compactIndex{
		name:   name,
		id:     append([]byte(compactIdxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

func (i compactIndex) Name() string {
	return i.name
}

func (i compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update checks indexer(prev) and indexer(save) and makes sure the primary
// key is stored under the right index values.
func (i compactIndex) Update(db pact.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.insert(db, key, save.Key()); err != nil {
				return err
			}
		}
		return nil
	case save == nil:
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.remove(db, key, prev.Key()); err != nil {
				return err
			}
		}
		return nil
	default:
		return i.move(db, prev, save)
	}
}

// Keys returns all entity keys that were indexed under given value.
func (i compactIndex) Keys(db pact.ReadOnlyKVStore, value []byte) pact.Iterator {
	val, err := db.Get(i.indexKey(value))
	if err != nil {
		return &failedIterator{err: err}
	}
	if val == nil {
		return &keysIterator{}
	}
	if i.unique {
		return &keysIterator{keys: [][]byte{val}}
	}
	var data MultiRef
	if err := data.Unmarshal(val); err != nil {
		return &failedIterator{err: errors.Wrap(errors.ErrModel, err.Error())}
	}
	return &keysIterator{keys: data.Refs}
}

// Query handles queries from the QueryRouter.
func (i compactIndex) Query(db pact.ReadOnlyKVStore, mod string, data []byte) ([]pact.Model, error) {
	switch mod {
	case pact.KeyQueryMod:
		refs, err := consumeIteratorKeys(i.Keys(db, data))
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	case pact.PrefixQueryMod:
		refs, err := i.getPrefix(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// getPrefix returns all references that have an index value that begins
// with a given prefix.
func (i compactIndex) getPrefix(db pact.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	models, err := queryPrefix(db, i.indexKey(prefix))
	if err != nil {
		return nil, err
	}
	var refs [][]byte
	for _, m := range models {
		if i.unique {
			refs = append(refs, m.Value)
			continue
		}
		var data MultiRef
		if err := data.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrap(errors.ErrModel, err.Error())
		}
		refs = append(refs, data.Refs...)
	}
	return refs, nil
}

func (i compactIndex) loadRefs(db pact.ReadOnlyKVStore, refs [][]byte) ([]pact.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]pact.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = pact.Pair(key, value)
	}
	return res, nil
}

func (i compactIndex) move(db pact.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}

	oldKeys, err := i.index(prev)
	if err != nil {
		return err
	}
	newKeys, err := i.index(save)
	if err != nil {
		return err
	}

	// Remove first, so that a unique value can be reassigned within the
	// same object.
	for _, k := range subtract(oldKeys, newKeys) {
		if err := i.remove(db, k, prev.Key()); err != nil {
			return err
		}
	}
	for _, k := range subtract(newKeys, oldKeys) {
		if err := i.insert(db, k, save.Key()); err != nil {
			return err
		}
	}
	return nil
}

// subtract returns all elements of minuend that are not in subtrahend.
func subtract(minuend [][]byte, subtrahend [][]byte) [][]byte {
	var res [][]byte
outer:
	for _, m := range minuend {
		for _, s := range subtrahend {
			if bytes.Equal(m, s) {
				continue outer
			}
		}
		res = append(res, m)
	}
	return res
}

func (i compactIndex) remove(db pact.KVStore, index []byte, pk []byte) error {
	if len(index) == 0 {
		return nil
	}

	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrap(errors.ErrNotFound, "cannot remove index from nothing")
	}
	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrNotFound, "cannot remove index from invalid object")
		}
		return db.Delete(key)
	}

	var data MultiRef
	if err := data.Unmarshal(cur); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	if len(data.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := data.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(key, raw)
}

func (i compactIndex) insert(db pact.KVStore, index []byte, pk []byte) error {
	if len(index) == 0 {
		return nil
	}

	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if i.unique {
		if cur != nil {
			return errors.Wrap(errors.ErrDuplicate, i.name)
		}
		return db.Set(key, pk)
	}

	var data MultiRef
	if cur != nil {
		if err := data.Unmarshal(cur); err != nil {
			return errors.Wrap(errors.ErrModel, err.Error())
		}
	}
	if err := data.Add(pk); err != nil {
		return err
	}
	raw, err := data.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(key, raw)
}

type failedIterator struct {
	err error
}

var _ pact.Iterator = (*failedIterator)(nil)

func (it *failedIterator) Next() ([]byte, []byte, error) {
	return nil, nil, it.err
}

func (failedIterator) Release() {}

type keysIterator struct {
	keys [][]byte
}

var _ pact.Iterator = (*keysIterator)(nil)

func (it *keysIterator) Next() ([]byte, []byte, error) {
	if len(it.keys) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	key := it.keys[0]
	it.keys = it.keys[1:]
	return key, nil, nil
}

func (keysIterator) Release() {}

// consumeIteratorKeys returns a list of all keys that given iterator
// returns and releases it. All results are kept in memory.
func consumeIteratorKeys(it pact.Iterator) ([][]byte, error) {
	defer it.Release()

	var keys [][]byte
	for {
		switch k, _, err := it.Next(); {
		case err == nil:
			keys = append(keys, k)
		case errors.ErrIteratorDone.Is(err):
			return keys, nil
		default:
			return keys, err
		}
	}
}
