package store

import (
	"fmt"
	"testing"

	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
)

func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := make([][]byte, size)
	vs := make([][]byte, size)
	models := make([]Model, size)
	for i := 0; i < size; i++ {
		ks[i] = []byte(fmt.Sprintf("escrow-%d", i))
		vs[i] = []byte(fmt.Sprintf("amount-%d", i*100))
		models[i] = Pair(ks[i], vs[i])
	}

	iter := NewSliceIterator(models)
	for i := 0; i < size; i++ {
		key, value, err := iter.Next()
		assert.Nil(t, err)
		assert.Equal(t, ks[i], key)
		assert.Equal(t, vs[i], value)
	}
	_, _, err := iter.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)

	it := NewSliceIterator(models)
	it.Release()
	_, _, err = it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	b := db.NewBatch()
	assert.Nil(t, b.Set([]byte("a"), []byte("1")))
	assert.Nil(t, b.Delete([]byte("b")))

	// Nothing is written before the batch is.
	v, err := db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 2, len(b.(*NonAtomicBatch).ShowOps()))

	assert.Nil(t, b.Write())
	v, err = db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), v)
	assert.Equal(t, 0, len(b.(*NonAtomicBatch).ShowOps()))
}
