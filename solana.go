// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// SolanaEncoder produces Solana addresses, which are the base58 encoded
// ed25519 public key. Private keys are exported as base58 of the 64-byte
// seed || public key concatenation that Phantom and Backpack import; the
// same 64 bytes are also available as hex through RawPrivateKey.
type SolanaEncoder struct{}

var (
	_ AddressEncoder = SolanaEncoder{}
	_ RawKeyExporter = SolanaEncoder{}
)

func (SolanaEncoder) Name() string { return "solana" }

func (SolanaEncoder) Curve() Curve { return Ed25519 }

func (e SolanaEncoder) PublicKey(priv []byte) ([]byte, error) {
	return ed25519PublicKey(e.Name(), priv)
}

func (e SolanaEncoder) Address(pub []byte) (string, error) {
	if err := checkLen(e.Name(), "public key", pub, ed25519.PublicKeySize); err != nil {
		return "", err
	}
	return base58.Encode(pub), nil
}

func (e SolanaEncoder) PrivateKey(priv, pub []byte) (string, error) {
	keypair, err := ed25519Keypair(e.Name(), priv, pub)
	if err != nil {
		return "", err
	}
	return base58.Encode(keypair), nil
}

// RawPrivateKey returns the 64-byte keypair as hex, the form solana-keygen
// style tooling reads.
func (e SolanaEncoder) RawPrivateKey(priv, pub []byte) (string, error) {
	keypair, err := ed25519Keypair(e.Name(), priv, pub)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(keypair), nil
}

// DecodeSolanaKey decodes a base58 Solana address (32 bytes) or exported
// keypair (64 bytes). Any other length is rejected.
func DecodeSolanaKey(s string) ([]byte, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("could not decode base58: %w", err)
	}
	if len(b) != ed25519.PublicKeySize && len(b) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("decoded key must be 32 or 64 bytes, got %d", len(b))
	}
	return b, nil
}

func ed25519PublicKey(chain string, priv []byte) ([]byte, error) {
	if err := checkLen(chain, "private key", priv, ed25519.SeedSize); err != nil {
		return nil, err
	}
	key := ed25519.NewKeyFromSeed(priv)
	return []byte(key.Public().(ed25519.PublicKey)), nil
}

// ed25519Keypair returns seed || pub after checking pub belongs to seed.
func ed25519Keypair(chain string, priv, pub []byte) ([]byte, error) {
	if err := checkLen(chain, "private key", priv, ed25519.SeedSize); err != nil {
		return nil, err
	}
	key := ed25519.NewKeyFromSeed(priv)
	if pub != nil && !key.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(pub)) {
		return nil, encodingErrorf(chain, "public key does not match private key")
	}
	return []byte(key), nil
}
