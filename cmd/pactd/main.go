package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/pact"
	pactd "github.com/iov-one/pact/cmd/pactd/app"
	"github.com/iov-one/pact/cmd/pactd/client"
	"github.com/iov-one/pact/commands"
	"github.com/iov-one/pact/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".pactd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("pactd")
	fmt.Println("          Token swap escrow node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check the app_state of genesis files")
	fmt.Println("getblock  Extract a block from blockchain.db")
	fmt.Println("retry     Run last block again to ensure it produces same result")
	fmt.Println("testgen   Write example encodings into a directory")
	fmt.Println("query     Read balances and escrows from a running node")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.pactd")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "pactd")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(pactd.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(pactd.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(pactd.Initializers(), rest)
	case "getblock":
		err = server.GetBlockCmd(rest)
	case "retry":
		err = server.RetryCmd(pactd.InlineApp, logger, *varHome, rest)
	case "testgen":
		err = commands.TestGenCmd(pactd.Examples(), rest)
	case "query":
		err = client.QueryCmd(os.Stdout, rest)
	case "version":
		fmt.Println(pact.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
