package orm

import (
	"testing"

	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	require.NoError(t, b.Put(db, []byte("c1"), &Counter{Count: 1}))

	var c1 Counter
	require.NoError(t, b.One(db, []byte("c1"), &c1))
	assert.Equal(t, int64(1), c1.Count)

	require.NoError(t, b.Has(db, []byte("c1")))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, []byte("c2"))))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, nil)))

	require.NoError(t, b.Delete(db, []byte("c1")))
	assert.True(t, errors.ErrNotFound.Is(b.Delete(db, []byte("unknown"))))
	assert.True(t, errors.ErrNotFound.Is(b.One(db, []byte("c1"), &c1)))
}

func TestModelBucketPutErrors(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	assert.True(t, errors.ErrType.Is(b.Put(db, []byte("x"), &MultiRef{Refs: [][]byte{{1}}})))
	assert.True(t, errors.ErrInput.Is(b.Put(db, []byte("x"), &Counter{Count: -3})))
	assert.True(t, errors.ErrEmpty.Is(b.Put(db, nil, &Counter{Count: 3})))
}

func TestModelBucketByIndex(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{}, WithIndex("value", countByValue, false))

	require.NoError(t, b.Put(db, []byte("a"), &Counter{Count: 4444}))
	require.NoError(t, b.Put(db, []byte("b"), &Counter{Count: 4444}))
	require.NoError(t, b.Put(db, []byte("c"), &Counter{Count: 1}))

	var values []Counter
	keys, err := b.ByIndex(db, "value", countKey(4444), &values)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, keys)
	assert.Equal(t, []Counter{{Count: 4444}, {Count: 4444}}, values)

	var ptrs []*Counter
	_, err = b.ByIndex(db, "value", countKey(1), &ptrs)
	require.NoError(t, err)
	assert.Equal(t, []*Counter{{Count: 1}}, ptrs)

	_, err = b.ByIndex(db, "value", countKey(99), &ptrs)
	assert.True(t, errors.ErrNotFound.Is(err))

	var wrong []MultiRef
	_, err = b.ByIndex(db, "value", countKey(1), &wrong)
	assert.True(t, errors.ErrType.Is(err))

	_, err = b.ByIndex(db, "value", countKey(1), values)
	assert.True(t, errors.ErrType.Is(err))

	_, err = b.ByIndex(db, "missing", countKey(1), &values)
	assert.True(t, ErrInvalidIndex.Is(err))
}
