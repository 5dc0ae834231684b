package utils

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

// Recovery is a decorator to recover from panics in transactions, so we
// can log them as errors.
type Recovery struct{}

var _ pact.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx pact.Context, store pact.KVStore, tx pact.Tx, next pact.Checker) (_ *pact.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx pact.Context, store pact.KVStore, tx pact.Tx, next pact.Deliverer) (_ *pact.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
