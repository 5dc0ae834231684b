package client

import (
	"context"
	"fmt"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	nm "github.com/tendermint/tendermint/node"
	rpctest "github.com/tendermint/tendermint/rpc/test"
)

// Runner is satisfied by *testing.M.
type Runner interface {
	Run() int
}

// TestWithTendermint runs the application inside an in-process tendermint
// node, hands the node to setup and runs the tests once the first block
// is committed. The returned exit code is meant for os.Exit.
func TestWithTendermint(app abci.Application, setup func(*nm.Node), m Runner) int {
	n := rpctest.StartTendermint(app)
	defer func() {
		_ = n.Stop()
		n.Wait()
	}()
	setup(n)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h, err := NewLocalClient(n).WaitForNextBlock(ctx)
	if err != nil {
		fmt.Printf("tendermint did not produce a block: %s\n", err)
		return 1
	}
	fmt.Printf("running tests from block %d\n", h.Height)
	return m.Run()
}
