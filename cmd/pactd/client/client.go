package client

import (
	"context"
	"sync"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/client"
	pactd "github.com/iov-one/pact/cmd/pactd/app"
	"github.com/iov-one/pact/crypto"
	"github.com/iov-one/pact/errors"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
)

// PactClient talks to a running pactd node. State is read through the
// node's abci query endpoint and transactions are committed over rpc.
type PactClient struct {
	*client.Client
	*Reader
	conn rpcclient.Client
}

// NewPactClient wraps a tendermint connection.
func NewPactClient(conn rpcclient.Client) *PactClient {
	c := client.NewClient(conn)
	return &PactClient{Client: c, Reader: NewReader(c), conn: conn}
}

// ChainID returns the chain id from the node genesis.
func (c *PactClient) ChainID() (string, error) {
	gen, err := c.conn.Genesis()
	if err != nil {
		return "", errors.Wrapf(errors.ErrNetwork, "genesis: %s", err.Error())
	}
	return gen.Genesis.ChainID, nil
}

// SignAndCommit signs the transaction with the next sequence of the key
// and blocks until it is included in a block. A transaction rejected on
// delivery is returned as an error with its original code.
func (c *PactClient) SignAndCommit(ctx context.Context, tx *pactd.Tx, key crypto.Signer, chainID string) (*pact.DeliverResult, error) {
	seq, err := c.NextSequence(key.PublicKey().Address())
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	if err := SignTx(tx, key, chainID, seq); err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	res, err := c.CommitTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	return res.Result, res.Err
}

// Nonce caches the sequence of one signer so that many transactions can
// be signed without a query for each of them.
type Nonce struct {
	mu        sync.Mutex
	reader    *Reader
	addr      pact.Address
	seq       int64
	fromQuery bool
}

// NewNonce creates a nonce for the signer address.
func NewNonce(r *Reader, addr pact.Address) *Nonce {
	return &Nonce{reader: r, addr: addr}
}

// Query always asks the node for the next sequence.
func (n *Nonce) Query() (int64, error) {
	seq, err := n.reader.NextSequence(n.addr)
	if err != nil {
		return 0, err
	}
	n.mu.Lock()
	n.seq = seq
	n.fromQuery = true
	n.mu.Unlock()
	return seq, nil
}

// Next returns the cached sequence incremented by one, assuming the
// previous value was used. The first call queries the node.
func (n *Nonce) Next() (int64, error) {
	n.mu.Lock()
	if !n.fromQuery && n.seq == 0 {
		n.mu.Unlock()
		return n.Query()
	}
	n.seq++
	n.fromQuery = false
	seq := n.seq
	n.mu.Unlock()
	return seq, nil
}
