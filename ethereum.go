// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// EthereumEncoder produces EVM account addresses: the last 20 bytes of
// Keccak256(X || Y), rendered with the EIP-55 mixed-case checksum.
type EthereumEncoder struct{}

var _ AddressEncoder = EthereumEncoder{}

func (EthereumEncoder) Name() string { return "ethereum" }

func (EthereumEncoder) Curve() Curve { return Secp256k1 }

// PublicKey returns the 64-byte uncompressed public key without the 0x04 tag.
func (e EthereumEncoder) PublicKey(priv []byte) ([]byte, error) {
	if err := checkSecp256k1Key(e.Name(), priv); err != nil {
		return nil, err
	}
	_, pub := btcec.PrivKeyFromBytes(priv)
	return pub.SerializeUncompressed()[1:], nil
}

func (e EthereumEncoder) Address(pub []byte) (string, error) {
	if err := checkLen(e.Name(), "public key", pub, 64); err != nil {
		return "", err
	}
	return common.BytesToAddress(keccak256(pub)[12:]).Hex(), nil
}

// PrivateKey returns the key as 0x-prefixed hex, the format MetaMask and
// web3 libraries import.
func (e EthereumEncoder) PrivateKey(priv, _ []byte) (string, error) {
	if err := checkSecp256k1Key(e.Name(), priv); err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(priv), nil
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
