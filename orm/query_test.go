package orm

import (
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawQuery(t *testing.T) {
	db := store.MemStore()
	require.NoError(t, db.Set([]byte("abc:1"), []byte("one")))
	require.NoError(t, db.Set([]byte("abc:2"), []byte("two")))
	require.NoError(t, db.Set([]byte("abd:1"), []byte("other")))

	qr := pact.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/")

	res, err := h.Query(db, pact.KeyQueryMod, []byte("abc:2"))
	require.NoError(t, err)
	assert.Equal(t, []pact.Model{pact.Pair([]byte("abc:2"), []byte("two"))}, res)

	res, err = h.Query(db, pact.KeyQueryMod, []byte("abc"))
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = h.Query(db, pact.PrefixQueryMod, []byte("abc:"))
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, []byte("one"), res[0].Value)

	res, err = h.Query(db, pact.PrefixQueryMod, nil)
	require.NoError(t, err)
	assert.Len(t, res, 3)

	_, err = h.Query(db, "range", nil)
	assert.True(t, errors.ErrInput.Is(err))
}
