package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickerInit requires a valid "ticker" option.
type tickerInit struct{}

func (tickerInit) FromGenesis(opts pact.Options, db pact.KVStore) error {
	var ticker string
	if err := opts.ReadOptions("ticker", &ticker); err != nil {
		return err
	}
	if ticker == "" {
		return errors.Wrap(errors.ErrEmpty, "ticker")
	}
	return db.Set([]byte("ticker"), []byte(ticker))
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "pact-validate")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}
	valid := write("valid.json", `{"app_state": {"ticker": "IOV"}}`)
	empty := write("empty.json", `{"app_state": {}}`)
	broken := write("broken.json", `{"app_state": `)

	cases := map[string]struct {
		paths   []string
		wantErr *errors.Error
	}{
		"valid":           {paths: []string{valid}},
		"no files":        {wantErr: errors.ErrInput},
		"missing option":  {paths: []string{valid, empty}, wantErr: errors.ErrEmpty},
		"invalid json":    {paths: []string{broken}, wantErr: errors.ErrInput},
		"file not exists": {paths: []string{filepath.Join(dir, "nope.json")}, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ValidateGenesis(tickerInit{}, tc.paths)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}
