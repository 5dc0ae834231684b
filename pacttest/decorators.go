package pacttest

import "github.com/iov-one/pact"

// Decorator is a mock implementation of the pact.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. If error attributes are not set then wrapped handler method is
// called and its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling the
	// wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ pact.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx, next pact.Checker) (*pact.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return &pact.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx, next pact.Deliverer) (*pact.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return &pact.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that runs given decorator over h.
func Decorate(h pact.Handler, d pact.Decorator) pact.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn pact.Handler
	dc pact.Decorator
}

var _ pact.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
