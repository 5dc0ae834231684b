package pacttest

import (
	"context"
	"fmt"

	"github.com/iov-one/pact"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. Signer and
// Signers are both considered, Signer goes last.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer pact.Condition

	// Signers represents an authentication of multiple signers.
	Signers []pact.Condition
}

func (a *Auth) GetConditions(pact.Context) []pact.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx pact.Context, addr pact.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve conditions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx pact.Context, conds ...pact.Condition) pact.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx pact.Context) []pact.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]pact.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []pact.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx pact.Context, addr pact.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
