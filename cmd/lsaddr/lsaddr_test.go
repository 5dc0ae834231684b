package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/x/escrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintAddresses(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"swap0001", "0x0000000000000002"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)

	authority, _, err := escrow.Authority()
	require.NoError(t, err)
	assert.Contains(t, lines[0], authority.String())
	assert.Equal(t, []string{"seed", "escrow", "vault"}, strings.Fields(lines[1]))

	addr, err := escrow.EscrowAddress([]byte("swap0001"))
	require.NoError(t, err)
	vault, err := escrow.VaultAddress(escrow.VaultBySeed, []byte("swap0001"), authority, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"7377617030303031", addr.String(), vault.String()}, strings.Fields(lines[2]))
	assert.True(t, strings.HasPrefix(lines[3], "0000000000000002"))
}

func TestAssociatedVaultIsShared(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"-header=false", "-strategy", "associated", "-ticker", "ETH", "swap0001", "swap0002"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	first, second := strings.Fields(lines[1]), strings.Fields(lines[2])
	assert.NotEqual(t, first[1], second[1])
	assert.Equal(t, first[2], second[2])
}

func TestRunErrors(t *testing.T) {
	cases := map[string]struct {
		args    []string
		wantErr *errors.Error
	}{
		"no seed":              {args: nil, wantErr: errors.ErrInput},
		"short seed":           {args: []string{"abc"}, wantErr: errors.ErrInput},
		"bad hex":              {args: []string{"0xzz"}, wantErr: errors.ErrInput},
		"associated no ticker": {args: []string{"-strategy", "associated", "swap0001"}, wantErr: errors.ErrCurrency},
		"unknown strategy":     {args: []string{"-strategy", "random", "swap0001"}, wantErr: errors.ErrState},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := run(&bytes.Buffer{}, tc.args)
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}
