package app

import (
	"context"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/x/utils"
)

// panicAtHeightDecorator panics if the context height is above the limit.
type panicAtHeightDecorator int64

func (p panicAtHeightDecorator) Check(ctx pact.Context, store pact.KVStore, tx pact.Tx, next pact.Checker) (*pact.CheckResult, error) {
	if val, _ := pact.GetHeight(ctx); val > int64(p) {
		panic("too high")
	}
	return next.Check(ctx, store, tx)
}

func (p panicAtHeightDecorator) Deliver(ctx pact.Context, store pact.KVStore, tx pact.Tx, next pact.Deliverer) (*pact.DeliverResult, error) {
	if val, _ := pact.GetHeight(ctx); val > int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, store, tx)
}

func TestChain(t *testing.T) {
	c1 := &pacttest.Decorator{}
	c2 := &pacttest.Decorator{}
	c3 := &pacttest.Decorator{}
	var missing *pacttest.Decorator
	h := &pacttest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		missing,
		utils.NewRecovery(),
		c2,
		panicAtHeightDecorator(6),
		nil,
		c3,
	).WithHandler(h)

	bg := context.Background()
	tx := &pacttest.Tx{}

	_, err := stack.Check(bg, nil, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(pact.WithHeight(bg, 4), nil, tx)
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// A panic is turned into an error by the recovery decorator.
	ctx := pact.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.IsErr(t, errors.ErrPanic, err)

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}
