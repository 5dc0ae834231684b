package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/x/escrow"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
}

func run(out io.Writer, args []string) error {
	fl := flag.NewFlagSet("lsaddr", flag.ContinueOnError)
	tickerFl := fl.String("ticker", "", "Deposit ticker, required by the associated vault strategy.")
	strategyFl := fl.String("strategy", escrow.VaultBySeed, "Vault strategy: seed or associated.")
	headerFl := fl.Bool("header", true, "Display header")
	fl.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
	lsaddr [options] <seed>...

Print the addresses derived for escrow seeds. A seed is either 8 characters
of text or 16 hex digits prefixed with "0x".

Derived addresses are deterministic. They can be computed before an escrow
is created, for example to reference a vault in a genesis file.

`)
		fl.PrintDefaults()
	}
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if fl.NArg() == 0 {
		return errors.Wrap(errors.ErrInput, "at least one seed is required")
	}
	if *strategyFl == escrow.VaultAssociated && !coin.IsCC(*tickerFl) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", *tickerFl)
	}

	seeds := make([][]byte, 0, fl.NArg())
	for _, s := range fl.Args() {
		seed, err := parseSeed(s)
		if err != nil {
			return err
		}
		seeds = append(seeds, seed)
	}
	return printAddresses(out, seeds, *strategyFl, *tickerFl, *headerFl)
}

func parseSeed(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") {
		seed, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "seed %q: %s", s, err)
		}
		return seed, nil
	}
	return []byte(s), nil
}

func printAddresses(out io.Writer, seeds [][]byte, strategy, ticker string, header bool) error {
	authority, bump, err := escrow.Authority()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 2, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "authority\t%s\t(bump %d)\n", authority, bump)
	if header {
		fmt.Fprintln(w, "seed\tescrow\tvault")
	}
	for _, seed := range seeds {
		addr, err := escrow.EscrowAddress(seed)
		if err != nil {
			return errors.Wrapf(err, "seed %X", seed)
		}
		vault, err := escrow.VaultAddress(strategy, seed, authority, ticker)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%X\t%s\t%s\n", seed, addr, vault)
	}
	return nil
}
