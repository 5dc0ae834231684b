package client

import (
	"fmt"

	"github.com/iov-one/pact"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	tmtypes "github.com/tendermint/tendermint/types"
)

// TransactionID is the tendermint hash of a serialized transaction.
type TransactionID = cmn.HexBytes

// RequestQuery and ResponseQuery mirror the abci query types so that a
// Client can stand in for an application.
type (
	RequestQuery  = abci.RequestQuery
	ResponseQuery = abci.ResponseQuery
)

// TxQuery is a tendermint event query selecting transactions, for example
// "app.key='abc'".
type TxQuery = string

// Header is a tendermint block header.
type Header = tmtypes.Header

// CommitResult describes a transaction included in a block. Result is set
// for successful transactions, Err carries the registered error of a
// failed one.
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *pact.DeliverResult
	Err    error
}

// Status is the subjective view of the connected node.
type Status struct {
	Height     int64
	CatchingUp bool
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*subscription)

type subscription struct {
	capacity []int
}

// WithCapacity sets the buffer size of the underlying event channel.
func WithCapacity(n int) SubscribeOption {
	return func(s *subscription) {
		s.capacity = []int{n}
	}
}

// QueryTxByID selects the transaction with the given hash.
func QueryTxByID(id TransactionID) TxQuery {
	return fmt.Sprintf("%s='%X'", tmtypes.TxHashKey, id)
}

func eventQuery(eventType string) string {
	return fmt.Sprintf("%s='%s'", tmtypes.EventTypeKey, eventType)
}

func commitResult(hash []byte, height int64, res abci.ResponseDeliverTx) *CommitResult {
	result, err := pact.ParseDeliverOrError(res)
	return &CommitResult{
		ID:     hash,
		Height: height,
		Result: result,
		Err:    err,
	}
}
