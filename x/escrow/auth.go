package escrow

import (
	"context"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/x"
)

type contextKey int

const contextKeyAuthority contextKey = iota

// withAuthority grants the custody authority to the ledger operations
// called with the returned context. Only this package can do that.
func withAuthority(ctx pact.Context, authority pact.Condition) pact.Context {
	return context.WithValue(ctx, contextKeyAuthority, authority)
}

// Authenticate exposes the custody authority when an escrow handler acts
// on a vault. Chain it with the signature authenticator in the
// authenticator given to the ledger.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx pact.Context) []pact.Condition {
	cond, _ := ctx.Value(contextKeyAuthority).(pact.Condition)
	if cond == nil {
		return nil
	}
	return []pact.Condition{cond}
}

func (a Authenticate) HasAddress(ctx pact.Context, addr pact.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
