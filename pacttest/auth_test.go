package pacttest

import (
	"context"
	"reflect"
	"testing"

	"github.com/iov-one/pact"
)

func TestAuthNoSigners(t *testing.T) {
	var a Auth

	if got := a.GetConditions(nil); got != nil {
		t.Fatalf("unexpected conditions: %+v", got)
	}
	if a.HasAddress(nil, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}
}

func TestAuthUsingSignerAndSigners(t *testing.T) {
	conds := []pact.Condition{
		NewCondition(),
		NewCondition(),
		NewCondition(),
	}

	a := Auth{
		Signer:  conds[2],
		Signers: conds[:2],
	}

	if got := a.GetConditions(nil); !reflect.DeepEqual(got, conds) {
		t.Fatalf("unexpected conditions: %v", got)
	}
	for i, c := range conds {
		if !a.HasAddress(nil, c.Address()) {
			t.Fatalf("condition %d not authenticated", i)
		}
	}
	if a.HasAddress(nil, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}
}

func TestCtxAuth(t *testing.T) {
	a := CtxAuth{Key: "auth"}
	ctx := context.Background()

	if got := a.GetConditions(ctx); got != nil {
		t.Fatalf("unexpected conditions: %v", got)
	}

	c := NewCondition()
	ctx = a.SetConditions(ctx, c)
	if !a.HasAddress(ctx, c.Address()) {
		t.Fatal("condition not authenticated")
	}
	if a.HasAddress(ctx, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	const seed = "d34c1970ae90acf3405f2d99dcaca16d0c7db379f4beafcfdf667b9d69ce350d27f5fb440509dfa79ec883a0510bc9a9614c3d44188881f0c5e402898b4bf3c9"

	a := DeriveKey(t, seed, 0)
	b := DeriveKey(t, seed, 0)
	c := DeriveKey(t, seed, 1)

	if !a.PublicKey().Equals(b.PublicKey()) {
		t.Fatal("same path must produce the same key")
	}
	if a.PublicKey().Equals(c.PublicKey()) {
		t.Fatal("different paths must produce different keys")
	}
}
