package store

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
)

// TestSuite runs the same set of checks against any CacheableKVStore
// implementation. Only the store constructor differs between the btree
// and the iavl tests.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns an empty store and a function releasing
// its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that cache writes reach the parent only on Write.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	escrow, vault, refund := []byte("escrow"), []byte("vault"), []byte("refund")
	assert.Nil(t, base.Set(escrow, []byte("open")))

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, escrow, []byte("open"), true)
	assert.Nil(t, cache.Set(vault, []byte("500")))
	s.AssertGetHas(t, cache, vault, []byte("500"), true)
	s.AssertGetHas(t, base, vault, nil, false)
	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, vault, []byte("500"), true)

	dropped := base.CacheWrap()
	assert.Nil(t, dropped.Set(refund, []byte("500")))
	dropped.Discard()
	s.AssertGetHas(t, base, refund, nil, false)

	settle := base.CacheWrap()
	assert.Nil(t, settle.Delete(escrow))
	assert.Nil(t, settle.Delete(vault))
	s.AssertGetHas(t, base, escrow, []byte("open"), true)
	assert.Nil(t, settle.Write())
	s.AssertGetHas(t, base, escrow, nil, false)
	s.AssertGetHas(t, base, vault, nil, false)
}

// CacheConflicts checks that a child overwriting and deleting parent
// values shadows the parent until written.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	parent, cleanup := s.makeBase()
	defer cleanup()

	a, b, c := []byte("a"), []byte("b"), []byte("c")
	assert.Nil(t, parent.Set(a, []byte("1")))
	assert.Nil(t, parent.Set(b, []byte("2")))

	child := parent.CacheWrap()
	assert.Nil(t, child.Set(a, []byte("11")))
	assert.Nil(t, child.Delete(b))
	assert.Nil(t, child.Set(c, []byte("3")))
	// delete of a key that exists nowhere is fine
	assert.Nil(t, child.Delete([]byte("zz")))

	s.AssertGetHas(t, parent, a, []byte("1"), true)
	s.AssertGetHas(t, parent, b, []byte("2"), true)
	s.AssertGetHas(t, parent, c, nil, false)

	s.AssertGetHas(t, child, a, []byte("11"), true)
	s.AssertGetHas(t, child, b, nil, false)
	s.AssertGetHas(t, child, c, []byte("3"), true)

	assert.Nil(t, child.Write())
	s.AssertGetHas(t, parent, a, []byte("11"), true)
	s.AssertGetHas(t, parent, b, nil, false)
	s.AssertGetHas(t, parent, c, []byte("3"), true)
}

// FuzzIterator applies random operations to a parent and a child cache
// and compares every iteration result with a plain map holding the same
// content.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	for round := int64(0); round < 5; round++ {
		t.Run(fmt.Sprintf("seed %d", round), func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			r := rand.New(rand.NewSource(round))
			want := make(map[string][]byte)
			applyRandom(t, r, base, want, 60)
			child := base.CacheWrap()
			applyRandom(t, r, child, want, 60)

			models := sortedModels(want)
			for i := 0; i < 10; i++ {
				start, end := randomBound(r, models), randomBound(r, models)
				if start != nil && end != nil && bytes.Compare(start, end) > 0 {
					start, end = end, start
				}
				expected := inRange(models, start, end)
				assertIteration(t, child, start, end, false, expected)
				assertIteration(t, child, start, end, true, reverse(expected))
			}
		})
	}
}

// IteratorWithConflicts checks iteration when child entries shadow or
// delete parent entries.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	m := func(k, v string) Model { return Pair([]byte(k), []byte(v)) }

	cases := map[string]struct {
		parent []Op
		child  []Op
		want   []Model
	}{
		"child only": {
			child: []Op{SetOp([]byte("b"), []byte("2")), SetOp([]byte("a"), []byte("1"))},
			want:  []Model{m("a", "1"), m("b", "2")},
		},
		"parent only": {
			parent: []Op{SetOp([]byte("b"), []byte("2")), SetOp([]byte("a"), []byte("1"))},
			want:   []Model{m("a", "1"), m("b", "2")},
		},
		"merged": {
			parent: []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("c"), []byte("3"))},
			child:  []Op{SetOp([]byte("b"), []byte("2"))},
			want:   []Model{m("a", "1"), m("b", "2"), m("c", "3")},
		},
		"child overwrites": {
			parent: []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("b"), []byte("2"))},
			child:  []Op{SetOp([]byte("b"), []byte("22")), SetOp([]byte("d"), []byte("4"))},
			want:   []Model{m("a", "1"), m("b", "22"), m("d", "4")},
		},
		"child deletes": {
			parent: []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("b"), []byte("2")), SetOp([]byte("c"), []byte("3"))},
			child:  []Op{DelOp([]byte("a")), DelOp([]byte("c")), DelOp([]byte("x"))},
			want:   []Model{m("b", "2")},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			for _, op := range tc.parent {
				assert.Nil(t, op.Apply(base))
			}
			child := base.CacheWrap()
			for _, op := range tc.child {
				assert.Nil(t, op.Apply(child))
			}
			assertIteration(t, child, nil, nil, false, tc.want)
			assertIteration(t, child, nil, nil, true, reverse(tc.want))
			if len(tc.want) > 1 {
				first, last := tc.want[0].Key, tc.want[len(tc.want)-1].Key
				assertIteration(t, child, first, last, false, tc.want[:len(tc.want)-1])
			}
		})
	}
}

// NestedCaches checks that a write of an inner cache is visible only in
// the outer cache until that one is written as well, and that discarding
// the outer cache drops both layers.
func (s *TestSuite) NestedCaches(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("vault"), []byte("100")
	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set(k, v))
	s.AssertGetHas(t, outer, k, nil, false)

	assert.Nil(t, inner.Write())
	s.AssertGetHas(t, outer, k, v, true)
	s.AssertGetHas(t, base, k, nil, false)

	outer.Discard()
	s.AssertGetHas(t, base, k, nil, false)

	outer = base.CacheWrap()
	inner = outer.CacheWrap()
	assert.Nil(t, inner.Set(k, v))
	assert.Nil(t, inner.Write())
	assert.Nil(t, outer.Write())
	s.AssertGetHas(t, base, k, v, true)
}

// AssertGetHas checks Get and Has for the key. A nil val means missing.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// applyRandom sets or deletes n random keys from a small key space, so
// that deletes and overwrites hit existing entries.
func applyRandom(t testing.TB, r *rand.Rand, kv SetDeleter, ref map[string][]byte, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("k%03d", r.Intn(100)))
		if r.Intn(4) == 0 {
			assert.Nil(t, kv.Delete(key))
			delete(ref, string(key))
			continue
		}
		val := make([]byte, 1+r.Intn(16))
		r.Read(val)
		assert.Nil(t, kv.Set(key, val))
		ref[string(key)] = val
	}
}

func sortedModels(ref map[string][]byte) []Model {
	res := make([]Model, 0, len(ref))
	for k, v := range ref {
		res = append(res, Pair([]byte(k), v))
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

// randomBound returns nil, an existing key or a key between entries.
func randomBound(r *rand.Rand, models []Model) []byte {
	switch n := r.Intn(3); {
	case n == 0 || len(models) == 0:
		return nil
	case n == 1:
		return models[r.Intn(len(models))].Key
	default:
		return []byte(fmt.Sprintf("k%03d5", r.Intn(100)))
	}
}

func inRange(models []Model, start, end []byte) []Model {
	var res []Model
	for _, m := range models {
		if start != nil && bytes.Compare(m.Key, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(m.Key, end) >= 0 {
			continue
		}
		res = append(res, m)
	}
	return res
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func assertIteration(t testing.TB, kv ReadOnlyKVStore, start, end []byte, desc bool, want []Model) {
	t.Helper()
	var (
		it  Iterator
		err error
	)
	if desc {
		it, err = kv.ReverseIterator(start, end)
	} else {
		it, err = kv.Iterator(start, end)
	}
	assert.Nil(t, err)
	defer it.Release()

	for i, w := range want {
		key, value, err := it.Next()
		assert.Nil(t, err)
		if !bytes.Equal(w.Key, key) {
			t.Fatalf("entry %d: want key %q, got %q", i, w.Key, key)
		}
		assert.Equal(t, w.Value, value)
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want ErrIteratorDone after %d entries, got %+v", len(want), err)
	}
}
