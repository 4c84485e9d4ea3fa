// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

// Base58Check version tags for ed25519 key hashes and keys.
var (
	TagTezosEd25519  = []byte{6, 161, 159} // tz1
	TagMavrykEd25519 = []byte{5, 186, 196} // mv1

	tagEd25519Secret = []byte{43, 246, 78, 7} // edsk
)

// tezosTags maps the textual address prefix to its version tag.
var tezosTags = map[string][]byte{
	"tz1": TagTezosEd25519,
	"mv1": TagMavrykEd25519,
}

// TezosEncoder produces Tezos style implicit account addresses:
// base58check(tag || Blake2b-160(pubkey)). The tag selects the network
// family, tz1 for Tezos and mv1 for Mavryk.
type TezosEncoder struct {
	Prefix string
	Tag    []byte
}

var _ AddressEncoder = TezosEncoder{}

// NewTezosEncoder returns the encoder for a known address prefix.
func NewTezosEncoder(prefix string) (TezosEncoder, error) {
	tag, ok := tezosTags[prefix]
	if !ok {
		return TezosEncoder{}, fmt.Errorf("unknown tezos address prefix %q", prefix)
	}
	return TezosEncoder{Prefix: prefix, Tag: tag}, nil
}

func (e TezosEncoder) Name() string { return "tezos/" + e.Prefix }

func (TezosEncoder) Curve() Curve { return Ed25519 }

func (e TezosEncoder) PublicKey(priv []byte) ([]byte, error) {
	return ed25519PublicKey(e.Name(), priv)
}

func (e TezosEncoder) Address(pub []byte) (string, error) {
	if len(e.Tag) != 3 {
		return "", encodingErrorf(e.Name(), "address tag must be 3 bytes, got %d", len(e.Tag))
	}
	if err := checkLen(e.Name(), "public key", pub, ed25519.PublicKeySize); err != nil {
		return "", err
	}

	h, err := blake2b.New(20, nil)
	if err != nil {
		return "", encodingErrorf(e.Name(), "%v", err)
	}
	h.Write(pub)
	return base58CheckEncode(e.Tag, h.Sum(nil)), nil
}

// PrivateKey returns the edsk encoded 64-byte secret key.
func (e TezosEncoder) PrivateKey(priv, pub []byte) (string, error) {
	keypair, err := ed25519Keypair(e.Name(), priv, pub)
	if err != nil {
		return "", err
	}
	return base58CheckEncode(tagEd25519Secret, keypair), nil
}

// base58CheckEncode encodes tag || payload with a four byte double SHA-256
// checksum. Tezos tags are several bytes long; the first one is the version
// byte and the rest lead the payload.
func base58CheckEncode(tag, payload []byte) string {
	body := make([]byte, 0, len(tag)-1+len(payload))
	body = append(body, tag[1:]...)
	body = append(body, payload...)
	return base58.CheckEncode(body, tag[0])
}

// base58CheckDecode verifies the checksum and the tag and returns the payload.
func base58CheckDecode(s string, tag []byte) ([]byte, error) {
	body, version, err := base58.CheckDecode(s)
	if err != nil {
		return nil, fmt.Errorf("could not decode base58check: %w", err)
	}
	if version != tag[0] || !bytes.HasPrefix(body, tag[1:]) {
		return nil, fmt.Errorf("unexpected base58check tag")
	}
	return body[len(tag)-1:], nil
}

// DecodeTezosAddress returns the 20-byte key hash of an implicit account
// address with a known prefix.
func DecodeTezosAddress(addr string) ([]byte, error) {
	if len(addr) < 3 {
		return nil, fmt.Errorf("address too short")
	}
	tag, ok := tezosTags[addr[:3]]
	if !ok {
		return nil, fmt.Errorf("unknown tezos address prefix %q", addr[:3])
	}
	hash, err := base58CheckDecode(addr, tag)
	if err != nil {
		return nil, err
	}
	if len(hash) != 20 {
		return nil, fmt.Errorf("address hash must be 20 bytes, got %d", len(hash))
	}
	return hash, nil
}
