// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package walletgen derives key pairs and chain addresses from BIP39 seed
// phrases. A phrase is turned into a 64-byte seed, the seed into a master key,
// and the master key is walked down a BIP44 style path to a leaf key which a
// chain specific encoder turns into an address and an exportable private key.
//
// Supported chain families are Cosmos (bech32), Ethereum (EIP-55 hex),
// Solana (base58 ed25519), Tezos and Mavryk (base58check ed25519), Nostr
// (NIP-06) and Bitcoin (BIP84 native segwit). Everything runs offline and is
// fully deterministic: the same phrase, path and chain always produce the
// same key and address.
package walletgen

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// entropySizes maps supported mnemonic word counts to entropy size in bits.
var entropySizes = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

// NormalizeSeedPhrase collapses runs of whitespace into single spaces and
// trims the phrase.
func NormalizeSeedPhrase(phrase string) string {
	return strings.Join(strings.Fields(phrase), " ")
}

// WordCount returns the number of words in a seed phrase.
func WordCount(phrase string) int {
	return len(strings.Fields(phrase))
}

// NewSeed converts a mnemonic into the 64-byte BIP39 seed using
// PBKDF2-HMAC-SHA512 with the optional passphrase. Empty phrases and phrases
// rejected by the BIP39 checksum are reported as ErrMalformedSeedPhrase.
func NewSeed(mnemonic, passphrase string) ([]byte, error) {
	mnemonic = NormalizeSeedPhrase(mnemonic)
	if mnemonic == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedSeedPhrase)
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSeedPhrase, err)
	}
	return seed, nil
}

// NewMnemonic generates a fresh random mnemonic with the given number of
// words using the currently selected BIP39 word list.
//
// Valid word counts are 12, 15, 18, 21 and 24, which correspond to 128, 160,
// 192, 224 and 256 bits of entropy.
func NewMnemonic(wordCount int) (string, error) {
	bits, ok := entropySizes[wordCount]
	if !ok {
		return "", fmt.Errorf("invalid word count: %d (must be 12, 15, 18, 21, or 24)", wordCount)
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("could not create entropy: %w", err)
	}

	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("could not create a mnemonic set of words: %w", err)
	}
	return words, nil
}
