package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/pact/coin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestGenCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "pact-testgen")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	c := coin.NewCoin(42, "IOV")
	require.NoError(t, TestGenCmd([]Example{{Filename: "coin", Obj: &c}}, []string{dir}))

	js, err := ioutil.ReadFile(filepath.Join(dir, "coin.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ticker": "IOV", "amount": 42}`, string(js))

	bin, err := ioutil.ReadFile(filepath.Join(dir, "coin.bin"))
	require.NoError(t, err)
	var loaded coin.Coin
	require.NoError(t, loaded.Unmarshal(bin))
	assert.Equal(t, c, loaded)
}
