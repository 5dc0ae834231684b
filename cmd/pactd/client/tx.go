package client

import (
	"github.com/iov-one/pact"
	pactd "github.com/iov-one/pact/cmd/pactd/app"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/crypto"
	"github.com/iov-one/pact/x/cash"
	"github.com/iov-one/pact/x/escrow"
	"github.com/iov-one/pact/x/sigs"
)

// Swap describes the terms the initializer offers.
type Swap struct {
	Seed        []byte
	Initializer pact.Address
	Deposit     coin.Coin
	Price       coin.Coin
}

// BuildSendTx creates an unsigned transaction moving tokens between two
// accounts.
func BuildSendTx(src, dest pact.Address, amount coin.Coin, memo string) *pactd.Tx {
	return &pactd.Tx{Msg: &cash.SendMsg{
		Source:      src,
		Destination: dest,
		Amount:      &amount,
		Memo:        memo,
	}}
}

// BuildInitializeTx creates an unsigned transaction opening a swap. The
// deposit is taken from and the price paid into the initializer's
// associated accounts.
func BuildInitializeTx(s Swap) (*pactd.Tx, error) {
	deposit, err := cash.AssociatedAddress(s.Initializer, s.Deposit.Ticker)
	if err != nil {
		return nil, err
	}
	receive, err := cash.AssociatedAddress(s.Initializer, s.Price.Ticker)
	if err != nil {
		return nil, err
	}
	return &pactd.Tx{Msg: &escrow.InitializeMsg{
		Seed:               s.Seed,
		Initializer:        s.Initializer,
		InitializerDeposit: deposit,
		InitializerReceive: receive,
		DepositTicker:      s.Deposit.Ticker,
		TakerTicker:        s.Price.Ticker,
		InitializerAmount:  s.Deposit.Amount,
		TakerAmount:        s.Price.Amount,
	}}, nil
}

// BuildExchangeTx creates an unsigned transaction accepting the escrow
// terms on behalf of the taker.
func BuildExchangeTx(escrowAddr pact.Address, e *escrow.Escrow, taker pact.Address) (*pactd.Tx, error) {
	deposit, err := cash.AssociatedAddress(taker, e.TakerTicker)
	if err != nil {
		return nil, err
	}
	receive, err := cash.AssociatedAddress(taker, e.DepositTicker)
	if err != nil {
		return nil, err
	}
	return &pactd.Tx{Msg: &escrow.ExchangeMsg{
		Escrow:             escrowAddr,
		Taker:              taker,
		TakerDeposit:       deposit,
		TakerReceive:       receive,
		InitializerReceive: e.InitializerReceive,
	}}, nil
}

// BuildCancelTx creates an unsigned transaction returning the deposit.
func BuildCancelTx(escrowAddr pact.Address) *pactd.Tx {
	return &pactd.Tx{Msg: &escrow.CancelMsg{Escrow: escrowAddr}}
}

// SignTx modifies the tx in place, appending a signature.
func SignTx(tx *pactd.Tx, signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// ParseTx loads a serialized transaction.
func ParseTx(raw []byte) (*pactd.Tx, error) {
	var tx pactd.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &tx, nil
}
