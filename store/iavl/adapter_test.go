package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/store"
)

func makeBase() (store.CacheableKVStore, func()) {
	return NewMemCommitStore().Adapter(), func() {}
}

func TestIavlCacheGetSet(t *testing.T) {
	store.NewTestSuite(makeBase).GetSet(t)
}

func TestIavlCacheConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).CacheConflicts(t)
}

func TestIavlFuzzIterator(t *testing.T) {
	store.NewTestSuite(makeBase).FuzzIterator(t)
}

func TestIavlIteratorWithConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).IteratorWithConflicts(t)
}

func TestIavlNestedCaches(t *testing.T) {
	store.NewTestSuite(makeBase).NestedCaches(t)
}

func TestCommitAndReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-commit-")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	commit := NewCommitStore(dir, "state")
	assert.Nil(t, commit.LoadLatestVersion())

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)

	k, v := []byte("escrow"), []byte("open")
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(k, v))

	// Not visible in the committed state until written and committed.
	got, err := commit.Get(k)
	assert.Nil(t, err)
	assert.Nil(t, got)

	assert.Nil(t, cache.Write())
	id1, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id1.Version)
	if len(id1.Hash) == 0 {
		t.Fatal("empty hash")
	}

	got, err = commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	// Discarded writes never reach the tree.
	discarded := commit.CacheWrap()
	assert.Nil(t, discarded.Delete(k))
	discarded.Discard()
	id2, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, id1.Hash, id2.Hash)
}
