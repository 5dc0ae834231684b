package store

import (
	"testing"
)

func makeBTreeBase() (CacheableKVStore, func()) {
	return BTreeCacheable{EmptyKVStore{}}.CacheWrap(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(makeBTreeBase).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(makeBTreeBase).CacheConflicts(t)
}

func TestBTreeFuzzIterator(t *testing.T) {
	NewTestSuite(makeBTreeBase).FuzzIterator(t)
}

func TestBTreeIteratorWithConflicts(t *testing.T) {
	NewTestSuite(makeBTreeBase).IteratorWithConflicts(t)
}

func TestBTreeNestedCaches(t *testing.T) {
	NewTestSuite(makeBTreeBase).NestedCaches(t)
}
