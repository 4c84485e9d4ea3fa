// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// BitcoinEncoder produces BIP84 native segwit (P2WPKH) addresses and WIF
// private keys.
type BitcoinEncoder struct {
	Params *chaincfg.Params
}

var _ AddressEncoder = BitcoinEncoder{}

func (BitcoinEncoder) Name() string { return "bitcoin" }

func (BitcoinEncoder) Curve() Curve { return Secp256k1 }

func (e BitcoinEncoder) params() *chaincfg.Params {
	if e.Params == nil {
		return &chaincfg.MainNetParams
	}
	return e.Params
}

func (e BitcoinEncoder) PublicKey(priv []byte) ([]byte, error) {
	if err := checkSecp256k1Key(e.Name(), priv); err != nil {
		return nil, err
	}
	_, pub := btcec.PrivKeyFromBytes(priv)
	return pub.SerializeCompressed(), nil
}

func (e BitcoinEncoder) Address(pub []byte) (string, error) {
	if err := checkLen(e.Name(), "public key", pub, btcec.PubKeyBytesLenCompressed); err != nil {
		return "", err
	}
	addr, err := btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub), e.params())
	if err != nil {
		return "", encodingErrorf(e.Name(), "%v", err)
	}
	return addr.EncodeAddress(), nil
}

func (e BitcoinEncoder) PrivateKey(priv, _ []byte) (string, error) {
	if err := checkSecp256k1Key(e.Name(), priv); err != nil {
		return "", err
	}
	key, _ := btcec.PrivKeyFromBytes(priv)
	wif, err := btcutil.NewWIF(key, e.params(), true)
	if err != nil {
		return "", encodingErrorf(e.Name(), "%v", err)
	}
	return wif.String(), nil
}
