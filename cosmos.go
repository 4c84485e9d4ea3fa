// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

// CosmosEncoder produces Cosmos SDK account addresses:
// bech32(prefix, RIPEMD160(SHA256(compressed pubkey))).
type CosmosEncoder struct {
	Prefix string
}

var _ AddressEncoder = CosmosEncoder{}

func (e CosmosEncoder) Name() string { return "cosmos/" + e.Prefix }

func (CosmosEncoder) Curve() Curve { return Secp256k1 }

// PublicKey returns the 33-byte compressed secp256k1 public key.
func (e CosmosEncoder) PublicKey(priv []byte) ([]byte, error) {
	if err := checkSecp256k1Key(e.Name(), priv); err != nil {
		return nil, err
	}
	_, pub := btcec.PrivKeyFromBytes(priv)
	return pub.SerializeCompressed(), nil
}

func (e CosmosEncoder) Address(pub []byte) (string, error) {
	if e.Prefix == "" {
		return "", encodingErrorf(e.Name(), "empty bech32 prefix")
	}
	if err := checkLen(e.Name(), "public key", pub, btcec.PubKeyBytesLenCompressed); err != nil {
		return "", err
	}

	conv, err := bech32.ConvertBits(btcutil.Hash160(pub), 8, 5, true)
	if err != nil {
		return "", encodingErrorf(e.Name(), "could not regroup hash: %v", err)
	}
	addr, err := bech32.Encode(e.Prefix, conv)
	if err != nil {
		return "", encodingErrorf(e.Name(), "%v", err)
	}
	return addr, nil
}

// PrivateKey returns the 32-byte key as lowercase hex, the format Keplr and
// the cosmos CLIs import.
func (e CosmosEncoder) PrivateKey(priv, _ []byte) (string, error) {
	if err := checkSecp256k1Key(e.Name(), priv); err != nil {
		return "", err
	}
	return hex.EncodeToString(priv), nil
}

// DecodeCosmosAddress decodes a bech32 account address and returns its human
// readable prefix and the 20-byte key hash.
func DecodeCosmosAddress(addr string) (string, []byte, error) {
	hrp, data, err := bech32.Decode(addr)
	if err != nil {
		return "", nil, fmt.Errorf("could not decode bech32 address: %w", err)
	}
	hash, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("could not regroup address data: %w", err)
	}
	if len(hash) != 20 {
		return "", nil, fmt.Errorf("address hash must be 20 bytes, got %d", len(hash))
	}
	return hrp, hash, nil
}

func checkSecp256k1Key(chain string, priv []byte) error {
	if err := checkLen(chain, "private key", priv, btcec.PrivKeyBytesLen); err != nil {
		return err
	}
	var k btcec.ModNScalar
	if overflow := k.SetByteSlice(priv); overflow || k.IsZero() {
		return encodingErrorf(chain, "private key is not a valid secp256k1 scalar")
	}
	return nil
}
