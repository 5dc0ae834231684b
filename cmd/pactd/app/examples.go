package app

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/commands"
	"github.com/iov-one/pact/crypto"
	"github.com/iov-one/pact/x/cash"
	"github.com/iov-one/pact/x/escrow"
	"github.com/iov-one/pact/x/sigs"
)

// Keys are fixed so that the generated files are reproducible. They are
// not secure at all.
var (
	maker = makePrivKey("1234567890")
	taker = makePrivKey("F00BA411")
)

// makePrivKey repeats the string as long as needed to get 64 digits, then
// parses it as hex and uses it as the key seed.
func makePrivKey(seed string) *crypto.PrivateKey {
	rep := 64/len(seed) + 1
	in := strings.Repeat(seed, rep)[:64]
	bin, err := hex.DecodeString(in)
	if err != nil {
		panic(err)
	}
	return crypto.PrivKeyEd25519FromSeed(bin)
}

func mustAssociated(owner pact.Address, ticker string) pact.Address {
	addr, err := cash.AssociatedAddress(owner, ticker)
	if err != nil {
		panic(err)
	}
	return addr
}

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	makerAddr := maker.PublicKey().Address()
	takerAddr := taker.PublicKey().Address()
	seed := []byte("example1")
	escrowAddr, err := escrow.EscrowAddress(seed)
	if err != nil {
		panic(err)
	}

	account := &cash.Account{
		Owner:   makerAddr,
		Balance: coin.NewCoin(50000, "ETH"),
	}
	send := &cash.SendMsg{
		Source:      mustAssociated(makerAddr, "ETH"),
		Destination: mustAssociated(takerAddr, "ETH"),
		Amount:      coin.NewCoinp(250, "ETH"),
		Memo:        "Have a great trip!",
	}
	initialize := &escrow.InitializeMsg{
		Seed:               seed,
		InitializerDeposit: mustAssociated(makerAddr, "ETH"),
		InitializerReceive: mustAssociated(makerAddr, "IOV"),
		DepositTicker:      "ETH",
		TakerTicker:        "IOV",
		InitializerAmount:  500,
		TakerAmount:        1000,
	}
	exchange := &escrow.ExchangeMsg{
		Escrow:             escrowAddr,
		TakerDeposit:       mustAssociated(takerAddr, "IOV"),
		TakerReceive:       mustAssociated(takerAddr, "ETH"),
		InitializerReceive: mustAssociated(makerAddr, "IOV"),
	}
	cancel := &escrow.CancelMsg{Escrow: escrowAddr}

	initTx := &Tx{Msg: initialize}
	sig, err := sigs.SignTx(maker, initTx, "test-123", 0)
	if err != nil {
		panic(err)
	}
	initTx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "pub_key", Obj: maker.PublicKey()},
		{Filename: "account", Obj: account},
		{Filename: "send_msg", Obj: send},
		{Filename: "initialize_msg", Obj: initialize},
		{Filename: "exchange_msg", Obj: exchange},
		{Filename: "cancel_msg", Obj: cancel},
		{Filename: "initialize_tx", Obj: initTx},
		{Filename: "unsigned_tx", Obj: &Tx{Msg: exchange}},
	}
}
