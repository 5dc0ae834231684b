package sigs

import (
	"context"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module can add a signer.
func withSigners(ctx pact.Context, signers []pact.Condition) pact.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate exposes the conditions of all verified signatures.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context. May be empty.
func (a Authenticate) GetConditions(ctx pact.Context) []pact.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]pact.Condition)
	return val
}

// HasAddress returns true if the given address signed the current
// Context.
func (a Authenticate) HasAddress(ctx pact.Context, addr pact.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
