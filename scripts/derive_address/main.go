// derive_address derives a single wallet address from a BIP39 mnemonic for testing.
//
// Usage:
//
//	go run ./scripts/derive_address --chain solana --index 2 "your seed phrase here"
//
// Or with stdin:
//
//	echo "your seed phrase" | go run ./scripts/derive_address --chain cosmos
//
// The derivation path and the address are printed on one line. The private key
// is never printed.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	walletgen "github.com/Quincy-seun/Wallet-Generator-From-Seed-Phrase"
	"github.com/spf13/pflag"
)

func main() {
	chainName := pflag.StringP("chain", "c", "ethereum", "Chain to derive for")
	index := pflag.Uint32P("index", "i", 0, "Address index")
	passphrase := pflag.String("passphrase", "", "BIP39 passphrase")
	pflag.Parse()

	var mnemonic string
	if pflag.NArg() > 0 {
		mnemonic = strings.Join(pflag.Args(), " ")
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			mnemonic = strings.TrimSpace(scanner.Text())
		}
	}

	if mnemonic == "" {
		fmt.Fprintln(os.Stderr, "Usage: derive_address [--chain name] [--index n] \"seed phrase\"")
		fmt.Fprintln(os.Stderr, "   or: echo \"seed phrase\" | derive_address [--chain name]")
		os.Exit(1)
	}

	chains, err := walletgen.NewChains(walletgen.DefaultChainConfigs())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	selected, err := walletgen.SelectChains(chains, []string{*chainName})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed, err := walletgen.NewSeed(mnemonic, *passphrase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w, err := selected[0].Derive(seed, 0, 0, *index)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s\t%s\n", w.Path, w.Address)
}
