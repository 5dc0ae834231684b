package utils

import (
	"github.com/iov-one/pact"
)

// ActionTagger will inspect the message being executed and add a tag
// `action = msg.Path()`. Clients use it to search or subscribe to, for
// example, all settled escrows.
type ActionTagger struct{}

var _ pact.Decorator = ActionTagger{}

// ActionKey is used by ActionTagger as the Key in the Tag it appends.
const ActionKey = "action"

// NewActionTagger creates a ActionTagger decorator.
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along.
func (ActionTagger) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx, next pact.Checker) (*pact.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends a tag on the result if there is a success.
func (ActionTagger) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx, next pact.Deliverer) (*pact.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, pact.Tag(ActionKey, []byte(msg.Path())))
	return res, nil
}
