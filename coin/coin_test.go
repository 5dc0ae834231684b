package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(20, "ABC"),
			b:       NewCoin(19, "ABC"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(1, "FOO"),
			b:       NewCoin(2, "FOO"),
			wantRes: -1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantRes, tc.a.Compare(tc.b))
		})
	}
}

func TestAddCoin(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same currency": {
			a:    NewCoin(500, "ETH"),
			b:    NewCoin(1000, "ETH"),
			want: NewCoin(1500, "ETH"),
		},
		"empty value on the left": {
			a:    Coin{},
			b:    NewCoin(7, "ETH"),
			want: NewCoin(7, "ETH"),
		},
		"empty value on the right": {
			a:    NewCoin(7, "ETH"),
			b:    Coin{},
			want: NewCoin(7, "ETH"),
		},
		"currency mismatch": {
			a:       NewCoin(1, "ETH"),
			b:       NewCoin(1, "BTC"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(math.MaxUint64, "ETH"),
			b:       NewCoin(1, "ETH"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestSubtractCoin(t *testing.T) {
	got, err := NewCoin(1000, "ETH").Subtract(NewCoin(400, "ETH"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(600, "ETH"), got)

	got, err = NewCoin(1000, "ETH").Subtract(Coin{})
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(1000, "ETH"), got)

	_, err = NewCoin(10, "ETH").Subtract(NewCoin(11, "ETH"))
	assert.IsErr(t, errors.ErrAmount, err)

	_, err = NewCoin(10, "ETH").Subtract(NewCoin(1, "BTC"))
	assert.IsErr(t, errors.ErrCurrency, err)
}

func TestCoinPredicates(t *testing.T) {
	c := NewCoin(5, "ETH")
	assert.Equal(t, true, c.IsPositive())
	assert.Equal(t, false, c.IsZero())
	assert.Equal(t, true, c.IsGTE(NewCoin(5, "ETH")))
	assert.Equal(t, false, c.IsGTE(NewCoin(6, "ETH")))
	assert.Equal(t, false, c.IsGTE(NewCoin(1, "BTC")))
	assert.Equal(t, true, IsEmpty(nil))
	assert.Equal(t, true, IsEmpty(&Coin{Ticker: "ETH"}))
	assert.Equal(t, false, IsEmpty(&c))
	assert.Equal(t, "ETH", c.ID())

	cpy := c.Clone()
	cpy.Amount = 1
	assert.Equal(t, uint64(5), c.Amount)
	var nilCoin *Coin
	assert.Nil(t, nilCoin.Clone())
}

func TestValidateCoin(t *testing.T) {
	assert.Nil(t, NewCoin(0, "ETH").Validate())
	assert.Nil(t, NewCoin(1, "IOVX").Validate())
	assert.IsErr(t, errors.ErrCurrency, NewCoin(1, "eth").Validate())
	assert.IsErr(t, errors.ErrCurrency, NewCoin(1, "TOOLONG").Validate())
	assert.IsErr(t, errors.ErrCurrency, NewCoin(1, "").Validate())
}

func TestHumanFormat(t *testing.T) {
	cases := map[string]struct {
		input   string
		want    Coin
		wantErr *errors.Error
	}{
		"simple":          {input: "500 ETH", want: NewCoin(500, "ETH")},
		"no space":        {input: "3BTC", want: NewCoin(3, "BTC")},
		"surrounding ws":  {input: "  7 IOV ", want: NewCoin(7, "IOV")},
		"fraction":        {input: "1.5 ETH", wantErr: errors.ErrInput},
		"negative":        {input: "-1 ETH", wantErr: errors.ErrInput},
		"missing ticker":  {input: "12", wantErr: errors.ErrInput},
		"too large value": {input: "18446744073709551616 ETH", wantErr: errors.ErrOverflow},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.input)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
				back, err := ParseHumanFormat(got.String())
				assert.Nil(t, err)
				assert.Equal(t, got, back)
			}
		})
	}
}

func TestCoinJSON(t *testing.T) {
	var human Coin
	assert.Nil(t, json.Unmarshal([]byte(`"42 ETH"`), &human))
	assert.Equal(t, NewCoin(42, "ETH"), human)

	var structured Coin
	assert.Nil(t, json.Unmarshal([]byte(`{"ticker": "BTC", "amount": 9}`), &structured))
	assert.Equal(t, NewCoin(9, "BTC"), structured)

	var bad Coin
	assert.IsErr(t, errors.ErrInput, json.Unmarshal([]byte(`"nine BTC"`), &bad))
}

func TestCoinFlagValue(t *testing.T) {
	var c Coin
	assert.Nil(t, c.Set("11 IOV"))
	assert.Equal(t, NewCoin(11, "IOV"), c)
	assert.IsErr(t, errors.ErrInput, c.Set("IOV"))
}

func TestCoinSerialization(t *testing.T) {
	c := NewCoin(math.MaxUint64, "IOVX")
	raw, err := c.Marshal()
	assert.Nil(t, err)

	var got Coin
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, c, got)
}
