package pact

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
)

func TestOptionsStream(t *testing.T) {
	cases := map[string]struct {
		json    string
		wantErr error
		exp     []struct{ Key int }
		empty   bool
	}{
		"happy path": {
			json: `{"list": [{"key": 1}, {"key": 2}]}`,
			exp: []struct{ Key int }{
				{Key: 1},
				{Key: 2},
			},
			wantErr: errors.ErrEmpty,
		},
		"empty list": {
			json:    `{}`,
			wantErr: errors.ErrEmpty,
			empty:   true,
		},
		"wrong value": {
			json: `{"list": [{"key": "dasdasas"}]}`,
			exp: []struct{ Key int }{
				{},
			},
			wantErr: errors.ErrInput,
		},
		"wrong body": {
			json:    `{"list": "adasda"}`,
			wantErr: errors.ErrInput,
			empty:   true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			var s struct{ Key int }
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))
			f, err := o.Stream("list")
			if tc.empty {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			for _, e := range tc.exp {
				err = f(&s)
				if err != nil {
					assert.IsErr(t, tc.wantErr, err)
					return
				}
				assert.Equal(t, e, s)
			}

			assert.IsErr(t, tc.wantErr, f(&s))
			assert.IsErr(t, errors.ErrState, f(&s))
		})
	}
}

func TestReadOptions(t *testing.T) {
	o := Options{"conf": json.RawMessage(`{"strategy": "seed"}`)}

	var conf struct{ Strategy string }
	assert.Nil(t, o.ReadOptions("conf", &conf))
	assert.Equal(t, "seed", conf.Strategy)

	var missing struct{ Strategy string }
	assert.Nil(t, o.ReadOptions("missing", &missing))
	assert.Equal(t, "", missing.Strategy)

	bad := Options{"conf": json.RawMessage(`[1, 2]`)}
	assert.IsErr(t, errors.ErrInput, bad.ReadOptions("conf", &conf))
}
