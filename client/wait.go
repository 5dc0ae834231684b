package client

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

// indexDelay is how long the node needs after a block event before its
// transactions can be searched.
const indexDelay = 100 * time.Millisecond

// WatchTx blocks until the transaction is included in a block. A
// transaction committed before the call is returned right away.
func (c *Client) WatchTx(ctx context.Context, id TransactionID) (*CommitResult, error) {
	subctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Subscribe before searching so a block committed in between is not
	// missed.
	txs := make(chan CommitResult, 1)
	if err := c.SubscribeTx(subctx, QueryTxByID(id), txs); err != nil {
		return nil, err
	}
	// Not yet committed transactions are reported as an error.
	if found, err := c.GetTxByID(ctx, id); err == nil {
		return found, nil
	}

	select {
	case res, ok := <-txs:
		if !ok {
			return nil, errors.Wrap(errors.ErrTimeout, "subscription closed before the transaction was committed")
		}
		return &res, nil
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrTimeout, ctx.Err().Error())
	}
}

// CommitTx submits the transaction and waits for its block. A transaction
// failing on delivery is not an error here, check the Err field.
func (c *Client) CommitTx(ctx context.Context, tx pact.Tx) (*CommitResult, error) {
	id, err := c.SubmitTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	res, err := c.WatchTx(ctx, id)
	if err != nil {
		return nil, err
	}
	time.Sleep(indexDelay)
	return res, nil
}

// WatchTxs waits for all transactions in parallel. Results keep the order
// of ids. Nil ids are skipped and leave a nil result.
func (c *Client) WatchTxs(ctx context.Context, ids []TransactionID) ([]*CommitResult, error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	results := make([]*CommitResult, len(ids))
	for i, id := range ids {
		if id == nil {
			continue
		}
		wg.Add(1)
		go func(i int, id TransactionID) {
			defer wg.Done()
			res, err := c.WatchTx(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			results[i] = res
			errs = errors.Append(errs, err)
		}(i, id)
	}
	wg.Wait()
	if errs != nil {
		return nil, errs
	}
	return results, nil
}

// CommitTxs submits all transactions in order, then waits until all of
// them are included in blocks. Submission stops at the first transaction
// rejected by the mempool.
func (c *Client) CommitTxs(ctx context.Context, txs []pact.Tx) ([]*CommitResult, error) {
	ids := make([]TransactionID, len(txs))
	for i, tx := range txs {
		id, err := c.SubmitTx(ctx, tx)
		if err != nil {
			return nil, errors.Wrapf(err, "tx %d", i)
		}
		ids[i] = id
	}
	return c.WatchTxs(ctx, ids)
}

// WaitForNextBlock returns the header of the next block.
func (c *Client) WaitForNextBlock(ctx context.Context) (*Header, error) {
	return c.waitForHeader(ctx, func(*Header) bool { return true })
}

// WaitForHeight returns the first new header with at least the given
// height. For a past height this is the next block.
func (c *Client) WaitForHeight(ctx context.Context, height int64) (*Header, error) {
	return c.waitForHeader(ctx, func(h *Header) bool { return h.Height >= height })
}

func (c *Client) waitForHeader(ctx context.Context, done func(*Header) bool) (*Header, error) {
	subctx, cancel := context.WithCancel(ctx)
	defer cancel()

	headers := make(chan Header, 2)
	if err := c.SubscribeHeaders(subctx, headers); err != nil {
		return nil, err
	}
	for h := range headers {
		if done(&h) {
			time.Sleep(indexDelay)
			return &h, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrTimeout, err.Error())
	}
	return nil, errors.Wrap(errors.ErrNetwork, "header subscription closed")
}
