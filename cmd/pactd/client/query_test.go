package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/crypto"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunQuery(t *testing.T) {
	owner := crypto.GenPrivKeyEd25519()
	ownerAddr := owner.PublicKey().Address()
	n := newNode(t, cash.GenesisAccount{Owner: ownerAddr, Balance: coin.NewCoin(77, "ETH")})
	r := NewReader(n.app)

	var out bytes.Buffer
	require.NoError(t, runQuery(&out, r, []string{"balance", ownerAddr.String(), "ETH"}))
	assert.Contains(t, out.String(), `"amount": 77`)

	out.Reset()
	require.NoError(t, runQuery(&out, r, []string{"accounts", ownerAddr.String()}))
	assert.Contains(t, out.String(), `"ticker": "ETH"`)

	out.Reset()
	require.NoError(t, runQuery(&out, r, []string{"escrows", ownerAddr.String()}))
	assert.Equal(t, "null", strings.TrimSpace(out.String()))

	err := runQuery(&out, r, []string{"escrow", ownerAddr.String()})
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestRunQueryErrors(t *testing.T) {
	r := NewReader(newNode(t).app)
	addr := crypto.GenPrivKeyEd25519().PublicKey().Address().String()

	cases := map[string][]string{
		"no arguments":   nil,
		"bad address":    {"balance", "zz", "ETH"},
		"missing ticker": {"balance", addr},
		"unknown query":  {"supply", addr},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			err := runQuery(&bytes.Buffer{}, r, args)
			assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
		})
	}
}

func TestQueryCmdRejectsUnknownFlag(t *testing.T) {
	err := QueryCmd(&bytes.Buffer{}, []string{"-nope"})
	assert.True(t, errors.ErrInput.Is(err))
}
