package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/store"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

func TestSavepoint(t *testing.T) {
	key, value := []byte("key"), []byte("value")

	cases := map[string]struct {
		savepoint Savepoint
		deliver   bool
		handler   *pacttest.Handler
		wantValue []byte
	}{
		"deliver success keeps the write": {
			savepoint: NewSavepoint().OnDeliver(),
			deliver:   true,
			handler:   &pacttest.Handler{},
			wantValue: value,
		},
		"deliver failure rolls back": {
			savepoint: NewSavepoint().OnDeliver(),
			deliver:   true,
			handler:   &pacttest.Handler{DeliverErr: errors.ErrState},
			wantValue: nil,
		},
		"check failure rolls back": {
			savepoint: NewSavepoint().OnCheck(),
			handler:   &pacttest.Handler{CheckErr: errors.ErrState},
			wantValue: nil,
		},
		"disabled savepoint does not roll back": {
			savepoint: NewSavepoint().OnCheck(),
			deliver:   true,
			handler:   &pacttest.Handler{DeliverErr: errors.ErrState},
			wantValue: value,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			tc.handler.Write = &pact.Model{Key: key, Value: value}
			h := pacttest.Decorate(tc.handler, tc.savepoint)
			if tc.deliver {
				h.Deliver(context.Background(), db, &pacttest.Tx{})
			} else {
				h.Check(context.Background(), db, &pacttest.Tx{})
			}
			got, err := db.Get(key)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantValue, got)
		})
	}
}

func TestRecovery(t *testing.T) {
	h := pacttest.Decorate(pacttest.PanicHandler{Value: "boom"}, NewRecovery())

	_, err := h.Check(context.Background(), store.MemStore(), &pacttest.Tx{})
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = h.Deliver(context.Background(), store.MemStore(), &pacttest.Tx{})
	assert.IsErr(t, errors.ErrPanic, err)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := pact.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
	tx := &pacttest.Tx{Msg: &pacttest.Msg{RoutePath: "escrow/cancel"}}

	ok := pacttest.Decorate(&pacttest.Handler{DeliverResult: pact.DeliverResult{Log: "all good"}}, NewLogging())
	_, err := ok.Deliver(ctx, store.MemStore(), tx)
	assert.Nil(t, err)

	failing := pacttest.Decorate(&pacttest.Handler{DeliverErr: errors.ErrNotFound}, NewLogging())
	_, err = failing.Deliver(ctx, store.MemStore(), tx)
	assert.IsErr(t, errors.ErrNotFound, err)

	out := buf.String()
	for _, want := range []string{"all good", "escrow/cancel", "not found"} {
		if !strings.Contains(out, want) {
			t.Fatalf("%q not logged: %s", want, out)
		}
	}
}

func TestActionTagger(t *testing.T) {
	tx := &pacttest.Tx{Msg: &pacttest.Msg{RoutePath: "escrow/exchange"}}
	h := pacttest.Decorate(&pacttest.Handler{}, NewActionTagger())

	res, err := h.Deliver(context.Background(), store.MemStore(), tx)
	assert.Nil(t, err)
	assert.Equal(t, []common.KVPair{pact.Tag(ActionKey, []byte("escrow/exchange"))}, res.Tags)

	failing := pacttest.Decorate(&pacttest.Handler{DeliverErr: errors.ErrState}, NewActionTagger())
	_, err = failing.Deliver(context.Background(), store.MemStore(), tx)
	assert.IsErr(t, errors.ErrState, err)

	_, err = h.Deliver(context.Background(), store.MemStore(), &pacttest.Tx{Err: errors.ErrMsg})
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestKeyTagger(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, db.Set([]byte("gone"), []byte("x")))

	h := pacttest.Decorate(&deleteAndWriteHandler{}, NewKeyTagger())
	res, err := h.Deliver(context.Background(), db, &pacttest.Tx{})
	assert.Nil(t, err)

	want := []common.KVPair{
		{Key: []byte("616263"), Value: []byte("s")},
		{Key: []byte("676F6E65"), Value: []byte("d")},
	}
	assert.Equal(t, want, res.Tags)

	res, err = pacttest.Decorate(&pacttest.Handler{}, NewKeyTagger()).Deliver(context.Background(), db, &pacttest.Tx{})
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res.Tags))
}

type deleteAndWriteHandler struct{}

func (deleteAndWriteHandler) Check(pact.Context, pact.KVStore, pact.Tx) (*pact.CheckResult, error) {
	return &pact.CheckResult{}, nil
}

func (deleteAndWriteHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	if err := db.Set([]byte("abc"), []byte("1")); err != nil {
		return nil, err
	}
	if err := db.Delete([]byte("gone")); err != nil {
		return nil, err
	}
	return &pact.DeliverResult{}, nil
}
