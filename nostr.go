// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/nbd-wtf/go-nostr/nip19"
)

// NostrEncoder produces NIP-06 Nostr identities. The public key is the
// 32-byte x-only BIP340 key, encoded as npub; the private key as nsec.
type NostrEncoder struct{}

var _ AddressEncoder = NostrEncoder{}

func (NostrEncoder) Name() string { return "nostr" }

func (NostrEncoder) Curve() Curve { return Secp256k1 }

func (e NostrEncoder) PublicKey(priv []byte) ([]byte, error) {
	if err := checkSecp256k1Key(e.Name(), priv); err != nil {
		return nil, err
	}
	_, pub := btcec.PrivKeyFromBytes(priv)
	return schnorr.SerializePubKey(pub), nil
}

func (e NostrEncoder) Address(pub []byte) (string, error) {
	if err := checkLen(e.Name(), "public key", pub, schnorr.PubKeyBytesLen); err != nil {
		return "", err
	}
	npub, err := nip19.EncodePublicKey(hex.EncodeToString(pub))
	if err != nil {
		return "", encodingErrorf(e.Name(), "failed to encode public key: %v", err)
	}
	return npub, nil
}

func (e NostrEncoder) PrivateKey(priv, _ []byte) (string, error) {
	if err := checkSecp256k1Key(e.Name(), priv); err != nil {
		return "", err
	}
	nsec, err := nip19.EncodePrivateKey(hex.EncodeToString(priv))
	if err != nil {
		return "", encodingErrorf(e.Name(), "failed to encode private key: %v", err)
	}
	return nsec, nil
}
