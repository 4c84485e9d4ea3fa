// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// SeedSize is the length of a BIP39 seed in bytes (512 bits).
const SeedSize = 64

// Curve selects the elliptic curve a key tree lives on. The curve is a
// property of the target chain, not of the derivation path.
type Curve int

const (
	// Secp256k1 keys follow BIP32 with both hardened and normal children.
	Secp256k1 Curve = iota
	// Ed25519 keys follow SLIP-0010 and only have hardened children.
	Ed25519
)

func (c Curve) String() string {
	switch c {
	case Secp256k1:
		return "secp256k1"
	case Ed25519:
		return "ed25519"
	default:
		return fmt.Sprintf("curve(%d)", int(c))
	}
}

// hmacKey returns the domain separation key used to derive the master key.
func (c Curve) hmacKey() ([]byte, error) {
	switch c {
	case Secp256k1:
		return []byte("Bitcoin seed"), nil
	case Ed25519:
		return []byte("ed25519 seed"), nil
	default:
		return nil, fmt.Errorf("unsupported curve %s", c)
	}
}

// ExtendedKey is a private key together with its chain code. Derivation never
// mutates an ExtendedKey; every step returns a new value.
type ExtendedKey struct {
	Key       [32]byte
	ChainCode [32]byte
	Curve     Curve

	Depth             uint8
	ChildNumber       uint32
	ParentFingerprint [4]byte
}

// NewMasterKey derives the master key from a 64-byte seed as
// HMAC-SHA512(domain key, seed). The left half is the key, the right half the
// chain code.
func NewMasterKey(seed []byte, curve Curve) (ExtendedKey, error) {
	if len(seed) != SeedSize {
		return ExtendedKey{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSeedLength, len(seed), SeedSize)
	}

	domain, err := curve.hmacKey()
	if err != nil {
		return ExtendedKey{}, err
	}

	il, ir := hmacSHA512(domain, seed)
	master := ExtendedKey{Curve: curve}
	copy(master.ChainCode[:], ir)

	if curve == Secp256k1 {
		var k btcec.ModNScalar
		if overflow := k.SetByteSlice(il); overflow || k.IsZero() {
			return ExtendedKey{}, fmt.Errorf("%w: master key out of range", ErrInvalidChildKey)
		}
	}
	copy(master.Key[:], il)

	return master, nil
}

// Child derives the child at index. Indices at or above HardenedOffset use
// hardened derivation.
func (k ExtendedKey) Child(index uint32) (ExtendedKey, error) {
	switch k.Curve {
	case Secp256k1:
		return k.secp256k1Child(index)
	case Ed25519:
		return k.ed25519Child(index)
	default:
		return ExtendedKey{}, fmt.Errorf("unsupported curve %s", k.Curve)
	}
}

// secp256k1Child implements BIP32 private child derivation:
//
//	hardened: I = HMAC-SHA512(c, 0x00 || k || ser32(i))
//	normal:   I = HMAC-SHA512(c, serP(point(k)) || ser32(i))
//	child   = (IL + k) mod n, chain code = IR
func (k ExtendedKey) secp256k1Child(index uint32) (ExtendedKey, error) {
	parentPub := k.compressedPublicKey()

	data := make([]byte, 0, 37)
	if index >= HardenedOffset {
		data = append(data, 0x00)
		data = append(data, k.Key[:]...)
	} else {
		data = append(data, parentPub...)
	}
	data = binary.BigEndian.AppendUint32(data, index)

	il, ir := hmacSHA512(k.ChainCode[:], data)

	childKey, err := addModN(il, k.Key[:])
	if err != nil {
		return ExtendedKey{}, fmt.Errorf("could not derive child %s: %w", formatIndex(index), err)
	}

	child := ExtendedKey{
		Key:         childKey,
		Curve:       Secp256k1,
		Depth:       k.Depth + 1,
		ChildNumber: index,
	}
	copy(child.ChainCode[:], ir)
	copy(child.ParentFingerprint[:], btcutil.Hash160(parentPub)[:4])
	return child, nil
}

// ed25519Child implements SLIP-0010 hardened derivation. The child key is IL
// itself; there is no modular addition on this curve.
func (k ExtendedKey) ed25519Child(index uint32) (ExtendedKey, error) {
	if index < HardenedOffset {
		return ExtendedKey{}, fmt.Errorf("could not derive child %s: %w", formatIndex(index), ErrNonHardenedEd25519)
	}

	data := make([]byte, 0, 37)
	data = append(data, 0x00)
	data = append(data, k.Key[:]...)
	data = binary.BigEndian.AppendUint32(data, index)

	il, ir := hmacSHA512(k.ChainCode[:], data)

	child := ExtendedKey{
		Curve:       Ed25519,
		Depth:       k.Depth + 1,
		ChildNumber: index,
	}
	copy(child.Key[:], il)
	copy(child.ChainCode[:], ir)
	return child, nil
}

// addModN returns (il + parent) mod n. It fails when il is not below n or the
// sum is zero, the two cases BIP32 declares invalid.
func addModN(il, parent []byte) ([32]byte, error) {
	var sum btcec.ModNScalar
	if overflow := sum.SetByteSlice(il); overflow {
		return [32]byte{}, fmt.Errorf("%w: IL is not below the curve order", ErrInvalidChildKey)
	}

	var p btcec.ModNScalar
	if overflow := p.SetByteSlice(parent); overflow || p.IsZero() {
		return [32]byte{}, fmt.Errorf("%w: parent key is not a valid scalar", ErrInvalidChildKey)
	}

	sum.Add(&p)
	if sum.IsZero() {
		return [32]byte{}, fmt.Errorf("%w: derived key is zero", ErrInvalidChildKey)
	}
	return sum.Bytes(), nil
}

// PublicKey returns the public key for this node: 33-byte compressed form on
// secp256k1, the raw 32-byte key on ed25519.
func (k ExtendedKey) PublicKey() []byte {
	if k.Curve == Ed25519 {
		priv := ed25519.NewKeyFromSeed(k.Key[:])
		return []byte(priv.Public().(ed25519.PublicKey))
	}
	return k.compressedPublicKey()
}

func (k ExtendedKey) compressedPublicKey() []byte {
	_, pub := btcec.PrivKeyFromBytes(k.Key[:])
	return pub.SerializeCompressed()
}

// Serialize returns the BIP32 extended private key (xprv...) for secp256k1
// keys. SLIP-0010 defines no serialization for ed25519 nodes.
func (k ExtendedKey) Serialize() (string, error) {
	if k.Curve != Secp256k1 {
		return "", fmt.Errorf("extended key serialization is not defined for %s", k.Curve)
	}

	params := &chaincfg.MainNetParams
	xkey := hdkeychain.NewExtendedKey(
		params.HDPrivateKeyID[:],
		k.Key[:],
		k.ChainCode[:],
		k.ParentFingerprint[:],
		k.Depth,
		k.ChildNumber,
		true,
	)
	return xkey.String(), nil
}

func hmacSHA512(key, data []byte) (il, ir []byte) {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}
