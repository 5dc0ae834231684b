package client

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/client"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/errors"
)

// DefaultNode is the rpc address of a locally running tendermint.
const DefaultNode = "http://localhost:26657"

// QueryCmd reads state from a running node and prints it as json.
//
//	query [-node URL] balance <owner> <ticker>
//	query [-node URL] accounts <owner>
//	query [-node URL] escrow <address>
//	query [-node URL] escrows <initializer>
func QueryCmd(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(ioutil.Discard)
	node := fs.String("node", DefaultNode, "tendermint rpc address")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	r := NewReader(client.NewClient(client.NewHTTPConnection(*node)))
	return runQuery(out, r, fs.Args())
}

func runQuery(out io.Writer, r *Reader, args []string) error {
	if len(args) < 2 {
		return errors.Wrap(errors.ErrInput, "usage: query <balance|accounts|escrow|escrows> <address> [ticker]")
	}
	addr, err := pact.ParseAddress(args[1])
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var res interface{}
	switch args[0] {
	case "balance":
		if len(args) != 3 {
			return errors.Wrap(errors.ErrInput, "balance requires an owner and a ticker")
		}
		res, err = r.Balance(addr, args[2])
	case "accounts":
		res, err = accounts(r, addr)
	case "escrow":
		res, err = r.Escrow(addr)
	case "escrows":
		res, err = r.EscrowsByInitializer(addr)
	default:
		return errors.Wrapf(errors.ErrInput, "unknown query %q", args[0])
	}
	if err != nil {
		return err
	}
	js, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	_, err = fmt.Fprintln(out, string(js))
	return err
}

type accountEntry struct {
	Address pact.Address `json:"address"`
	Balance coin.Coin    `json:"balance"`
}

func accounts(r *Reader, owner pact.Address) ([]accountEntry, error) {
	addrs, accs, err := r.Accounts(owner)
	if err != nil {
		return nil, err
	}
	res := make([]accountEntry, len(addrs))
	for i := range addrs {
		res[i] = accountEntry{Address: addrs[i], Balance: accs[i].Balance}
	}
	return res, nil
}
