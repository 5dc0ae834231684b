package client

import (
	"context"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	tmquery "github.com/tendermint/tendermint/libs/pubsub/query"
	nm "github.com/tendermint/tendermint/node"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// searchPageSize is the number of transactions requested per search page.
const searchPageSize = 50

// Client gives typed access to a tendermint node running a pact
// application. Single requests are defined here, blocking helpers that
// wait for blocks and transactions are in wait.go.
type Client struct {
	conn rpcclient.Client
}

// NewClient wraps an existing tendermint connection.
func NewClient(conn rpcclient.Client) *Client {
	return &Client{conn: conn}
}

// NewLocalClient connects to an in-process node.
func NewLocalClient(node *nm.Node) *Client {
	return NewClient(NewLocalConnection(node))
}

// Status returns the latest height known to the node.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	status, err := c.conn.Status()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "status: %s", err)
	}
	return &Status{
		Height:     status.SyncInfo.LatestBlockHeight,
		CatchingUp: status.SyncInfo.CatchingUp,
	}, nil
}

// Header returns the header of a committed block. ErrNotFound is
// returned for heights the node does not have yet.
func (c *Client) Header(ctx context.Context, height int64) (*Header, error) {
	info, err := c.conn.BlockchainInfo(height, height)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "blockchain info: %s", err)
	}
	if len(info.BlockMetas) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "no header for height %d", height)
	}
	return &info.BlockMetas[0].Header, nil
}

// SubmitTx places the transaction in the mempool. A transaction rejected
// by CheckTx returns the registered error of its code. Use WatchTx to
// wait for the block.
func (c *Client) SubmitTx(ctx context.Context, tx pact.Tx) (TransactionID, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "marshal: %s", err)
	}
	res, err := c.conn.BroadcastTxSync(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "broadcast: %s", err)
	}
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return res.Hash, nil
}

// Query has the signature of abci.Application.Query so a Client can be
// wrapped with app.ABCIStore. Transport failures are returned as a
// response carrying the ErrNetwork code.
func (c *Client) Query(q RequestQuery) ResponseQuery {
	opts := rpcclient.ABCIQueryOptions{Height: q.Height, Prove: q.Prove}
	res, err := c.conn.ABCIQueryWithOptions(q.Path, q.Data, opts)
	if err != nil {
		code, log := errors.ABCIInfo(errors.Wrap(errors.ErrNetwork, err.Error()), false)
		return ResponseQuery{Code: code, Log: log}
	}
	return res.Response
}

// GetTxByID returns a committed transaction.
func (c *Client) GetTxByID(ctx context.Context, id TransactionID) (*CommitResult, error) {
	tx, err := c.conn.Tx(id, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "tx %X: %s", []byte(id), err)
	}
	return commitResult(tx.Hash, tx.Height, tx.TxResult), nil
}

// SearchTx returns all committed transactions matching the query, reading
// every result page.
func (c *Client) SearchTx(ctx context.Context, query TxQuery) ([]*CommitResult, error) {
	var results []*CommitResult
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrTimeout, err.Error())
		}
		search, err := c.conn.TxSearch(query, false, page, searchPageSize)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrNetwork, "search: %s", err)
		}
		for _, tx := range search.Txs {
			results = append(results, commitResult(tx.Hash, tx.Height, tx.TxResult))
		}
		if len(search.Txs) == 0 || len(results) >= search.TotalCount {
			return results, nil
		}
	}
}

// SubscribeHeaders writes every new block header to results until the
// context is cancelled. The channel is closed afterwards.
func (c *Client) SubscribeHeaders(ctx context.Context, results chan<- Header, opts ...SubscribeOption) error {
	events, err := c.subscribe(ctx, eventQuery(tmtypes.EventNewBlockHeader), opts...)
	if err != nil {
		return err
	}
	go func() {
		defer close(results)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				h, ok := ev.Data.(tmtypes.EventDataNewBlockHeader)
				if !ok {
					continue
				}
				select {
				case results <- h.Header:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return nil
}

// SubscribeTx writes every committed transaction matching the query to
// results until the context is cancelled. The channel is closed
// afterwards.
func (c *Client) SubscribeTx(ctx context.Context, query TxQuery, results chan<- CommitResult, opts ...SubscribeOption) error {
	q := eventQuery(tmtypes.EventTx) + " AND " + query
	events, err := c.subscribe(ctx, q, opts...)
	if err != nil {
		return err
	}
	go func() {
		defer close(results)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				tx, ok := ev.Data.(tmtypes.EventDataTx)
				if !ok {
					continue
				}
				res := commitResult(tx.Tx.Hash(), tx.Height, tx.Result)
				select {
				case results <- *res:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return nil
}

// subscribe registers a uniquely named subscriber and unsubscribes it
// once the context is done.
func (c *Client) subscribe(ctx context.Context, query string, opts ...SubscribeOption) (<-chan ctypes.ResultEvent, error) {
	var conf subscription
	for _, o := range opts {
		o(&conf)
	}
	q, err := tmquery.New(query)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "query %q: %s", query, err)
	}

	subscriber := "pact-" + cmn.RandStr(16)
	events, err := c.conn.Subscribe(ctx, subscriber, q.String(), conf.capacity...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "subscribe %q: %s", query, err)
	}
	go func() {
		<-ctx.Done()
		_ = c.conn.Unsubscribe(context.Background(), subscriber, q.String())
	}()
	return events, nil
}
