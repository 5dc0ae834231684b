package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/pact/errors"
)

// collectItems returns all btree items in [start, end) in ascending order.
// A nil bound means no limit.
func collectItems(bt *btree.BTree, start, end []byte) []btree.Item {
	var res []btree.Item
	add := func(i btree.Item) bool {
		res = append(res, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(add)
	case start == nil:
		bt.AscendLessThan(bkey{end}, add)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, add)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, add)
	}
	return res
}

// mergeIterator combines the items of a cache with the iterator of the
// store the cache is wrapping. Cached items take precedence and deleted
// items hide the parent entry with the same key.
type mergeIterator struct {
	items   []btree.Item
	reverse bool

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	hasParent  bool
	parentDone bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []btree.Item, parent Iterator, reverse bool) *mergeIterator {
	return &mergeIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

// Next implements Iterator.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if !m.hasParent && !m.parentDone {
			k, v, err := m.parent.Next()
			switch {
			case errors.ErrIteratorDone.Is(err):
				m.parentDone = true
			case err != nil:
				return nil, nil, err
			default:
				m.parentKey, m.parentVal, m.hasParent = k, v, true
			}
		}

		if len(m.items) == 0 {
			if !m.hasParent {
				return nil, nil, errors.ErrIteratorDone
			}
			m.hasParent = false
			return m.parentKey, m.parentVal, nil
		}

		item := m.items[0]
		itemKey := item.(keyer).Key()
		if m.hasParent {
			cmp := bytes.Compare(itemKey, m.parentKey)
			if m.reverse {
				cmp = -cmp
			}
			if cmp > 0 {
				m.hasParent = false
				return m.parentKey, m.parentVal, nil
			}
			if cmp == 0 {
				// Cached value overwrites the parent one.
				m.hasParent = false
			}
		}

		m.items = m.items[1:]
		if s, ok := item.(setItem); ok {
			return s.Key(), s.value, nil
		}
		// Deleted items are skipped.
	}
}

// Release implements Iterator.
func (m *mergeIterator) Release() {
	m.parent.Release()
	m.items = nil
}
