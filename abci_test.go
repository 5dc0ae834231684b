package pact_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func TestCreateErrorResult(t *testing.T) {
	cases := map[string]struct {
		err   error
		debug bool
		log   string
		code  uint32
	}{
		"stdlib error is redacted": {
			err:  fmt.Errorf("base"),
			log:  "internal error",
			code: 1,
		},
		"stdlib error in debug mode": {
			err:   fmt.Errorf("base"),
			debug: true,
			log:   "base",
			code:  1,
		},
		"registered error": {
			err:  errors.Wrap(errors.ErrUnauthorized, "nonce"),
			log:  "nonce: unauthorized",
			code: errors.ErrUnauthorized.ABCICode(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := pact.DeliverTxError(tc.err, tc.debug)
			assert.True(t, dres.IsErr())
			assert.True(t, strings.HasPrefix(dres.Log, "cannot deliver tx: "+tc.log), dres.Log)
			assert.Equal(t, tc.code, dres.Code)

			cres := pact.CheckTxError(tc.err, tc.debug)
			assert.True(t, cres.IsErr())
			assert.True(t, strings.HasPrefix(cres.Log, "cannot check tx: "+tc.log), cres.Log)
			assert.Equal(t, tc.code, cres.Code)
		})
	}
}

func TestCreateResults(t *testing.T) {
	d, msg := []byte{1, 3, 4}, "got it"
	dres := pact.DeliverResult{
		Data: d,
		Log:  msg,
		Tags: []common.KVPair{pact.Tag("escrow", []byte("addr"))},
	}
	ad := pact.DeliverOrError(&dres, nil, false)
	assert.EqualValues(t, d, ad.Data)
	assert.Equal(t, msg, ad.Log)
	assert.Len(t, ad.Tags, 1)
	assert.Equal(t, "escrow", string(ad.Tags[0].Key))

	c, gas := "aok", int64(12345)
	ac := pact.CheckOrError(pact.NewCheck(gas, c), nil, false)
	assert.Equal(t, c, ac.Log)
	assert.Equal(t, gas, ac.GasWanted)
	assert.Empty(t, ac.Data)

	failed := pact.CheckOrError(nil, errors.ErrState, false)
	assert.Equal(t, errors.ErrState.ABCICode(), failed.Code)
}
