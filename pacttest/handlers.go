package pacttest

import "github.com/iov-one/pact"

// Handler is a mock implementation of the pact.Handler interface. It
// returns configured results and counts calls.
type Handler struct {
	checkCall   int
	CheckResult pact.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult pact.DeliverResult
	DeliverErr    error

	// Write if set is stored in the database before returning.
	Write *pact.Model
}

var _ pact.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) write(db pact.KVStore) error {
	if h.Write == nil {
		return nil
	}
	return db.Set(h.Write.Key, h.Write.Value)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// PanicHandler panics with given value on every call.
type PanicHandler struct {
	Value interface{}
}

var _ pact.Handler = PanicHandler{}

func (h PanicHandler) Check(pact.Context, pact.KVStore, pact.Tx) (*pact.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(pact.Context, pact.KVStore, pact.Tx) (*pact.DeliverResult, error) {
	panic(h.Value)
}
