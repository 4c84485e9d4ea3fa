// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/matryer/is"
	"golang.org/x/crypto/blake2b"
)

const (
	cosmosPriv = "c4a48e2fce1481cd3294b4490f6678090ea98d3d0e5cd984558ab0968741b104"
	cosmosPub  = "024f4e2ad99c34d60b9ba6283c9431a8418af8673212961f97a77b6377fcd05b62"
	cosmosHash = "28ff5c6d57d8cfd492b6fb42614536ed648e01fd"
)

func TestCosmosEncoder(t *testing.T) {
	is := is.New(t)

	priv := mustHex(t, cosmosPriv)
	enc := CosmosEncoder{Prefix: "cosmos"}

	pub, err := enc.PublicKey(priv)
	is.NoErr(err)
	is.Equal(hex.EncodeToString(pub), cosmosPub)

	addr, err := enc.Address(pub)
	is.NoErr(err)
	is.Equal(addr, "cosmos19rl4cm2hmr8afy4kldpxz3fka4jguq0auqdal4")

	bbn, err := CosmosEncoder{Prefix: "bbn"}.Address(pub)
	is.NoErr(err)
	is.Equal(bbn, "bbn19rl4cm2hmr8afy4kldpxz3fka4jguq0at7uvqv")

	for _, a := range []string{addr, bbn} {
		_, hash, err := DecodeCosmosAddress(a)
		is.NoErr(err)
		is.Equal(hex.EncodeToString(hash), cosmosHash) // same key hash under every prefix
	}
	hrp, _, err := DecodeCosmosAddress(bbn)
	is.NoErr(err)
	is.Equal(hrp, "bbn")

	exported, err := enc.PrivateKey(priv, pub)
	is.NoErr(err)
	is.Equal(exported, cosmosPriv)
}

func TestDecodeCosmosAddressInvalid(t *testing.T) {
	is := is.New(t)

	_, _, err := DecodeCosmosAddress("cosmos19rl4cm2hmr8afy4kldpxz3fka4jguq0auqdal5") // bad checksum
	is.True(err != nil)
	_, _, err = DecodeCosmosAddress("not-bech32")
	is.True(err != nil)
}

func TestEthereumEncoder(t *testing.T) {
	is := is.New(t)

	priv := mustHex(t, "1ab42cc412b618bdea3a599e3c9bae199ebf030895b039e9db1e30dafb12b727")
	enc := EthereumEncoder{}

	pub, err := enc.PublicKey(priv)
	is.NoErr(err)
	is.Equal(len(pub), 64)

	addr, err := enc.Address(pub)
	is.NoErr(err)
	is.Equal(addr, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94")

	exported, err := enc.PrivateKey(priv, pub)
	is.NoErr(err)
	is.Equal(exported, "0x1ab42cc412b618bdea3a599e3c9bae199ebf030895b039e9db1e30dafb12b727")
}

func TestKeccak256(t *testing.T) {
	is := is.New(t)
	is.Equal(hex.EncodeToString(keccak256(nil)), "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
}

func TestNostrEncoder(t *testing.T) {
	is := is.New(t)

	priv := mustHex(t, "5f29af3b9676180290e77a4efad265c4c2ff28a5302461f73597fda26bb25731")
	enc := NostrEncoder{}

	pub, err := enc.PublicKey(priv)
	is.NoErr(err)
	is.Equal(hex.EncodeToString(pub), "e8bcf3823669444d0b49ad45d65088635d9fd8500a75b5f20b59abefa56a144f")

	npub, err := enc.Address(pub)
	is.NoErr(err)
	is.Equal(npub, "npub1az708q3kd9zy6z6f44zav5ygvdwelkzspf6mtusttx47lft2z38sghk0w7")

	nsec, err := enc.PrivateKey(priv, pub)
	is.NoErr(err)
	is.Equal(nsec, "nsec1tu567wukwcvq9y880f8045n9cnp07299xqjxrae4jl76y6aj2ucs2mkupq")
}

func TestBitcoinEncoderParams(t *testing.T) {
	is := is.New(t)

	priv := mustHex(t, cosmosPriv)
	pub, err := BitcoinEncoder{}.PublicKey(priv)
	is.NoErr(err)

	main, err := BitcoinEncoder{}.Address(pub)
	is.NoErr(err)
	is.Equal(main[:4], "bc1q")

	test, err := BitcoinEncoder{Params: &chaincfg.TestNet3Params}.Address(pub)
	is.NoErr(err)
	is.Equal(test[:4], "tb1q")

	wif, err := BitcoinEncoder{}.PrivateKey(priv, pub)
	is.NoErr(err)
	is.True(wif[0] == 'K' || wif[0] == 'L') // compressed mainnet WIF
}

func TestSolanaEncoder(t *testing.T) {
	is := is.New(t)

	master, err := NewMasterKey(abandonSeed(t), Ed25519)
	is.NoErr(err)
	leaf, err := DeriveKey(master, DerivationPath{44, 501, 0, 0}.Hardened())
	is.NoErr(err)

	enc := SolanaEncoder{}
	pub, err := enc.PublicKey(leaf.Key[:])
	is.NoErr(err)
	is.Equal(pub, leaf.PublicKey())

	addr, err := enc.Address(pub)
	is.NoErr(err)
	is.Equal(addr, "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk")

	secret, err := enc.PrivateKey(leaf.Key[:], pub)
	is.NoErr(err)
	is.Equal(secret, "27npWoNE4HfmLeQo1TyWcW7NEA28qnsnDK7kcttDQEWrCWnro83HMJ97rMmpvYYZRwDAvG4KRuB7hTBacvwD7bgi")

	raw, err := enc.RawPrivateKey(leaf.Key[:], pub)
	is.NoErr(err)
	is.Equal(len(raw), 128)
	is.Equal(raw, hex.EncodeToString(append(leaf.Key[:], pub...))) // same keypair as the base58 export

	decoded, err := DecodeSolanaKey(addr)
	is.NoErr(err)
	is.Equal(decoded, pub)

	keypair, err := DecodeSolanaKey(secret)
	is.NoErr(err)
	is.Equal(keypair[:32], leaf.Key[:])
	is.Equal(keypair[32:], pub)

	_, err = DecodeSolanaKey("4HUtbHhN2TkpR") // decodes to 10 bytes
	is.True(err != nil)
	_, err = DecodeSolanaKey("0OIl") // not base58
	is.True(err != nil)

	_, err = enc.PrivateKey(leaf.Key[:], make([]byte, 32))
	is.True(err != nil) // public key does not belong to the seed
}

func TestTezosEncoder(t *testing.T) {
	is := is.New(t)

	master, err := NewMasterKey(abandonSeed(t), Ed25519)
	is.NoErr(err)
	leaf, err := DeriveKey(master, DerivationPath{44, 1729, 0, 0}.Hardened())
	is.NoErr(err)
	pub := leaf.PublicKey()

	for prefix, want := range map[string]string{
		"tz1": "tz1VQA4RP4fLjEEMW2FR4pE9kAg5abb5h5GL",
		"mv1": "mv1HmdN1hRxhJW1aeLpGJdvAuBY48z38JjVq",
	} {
		enc, err := NewTezosEncoder(prefix)
		is.NoErr(err)
		addr, err := enc.Address(pub)
		is.NoErr(err)
		is.Equal(addr, want)

		hash, err := DecodeTezosAddress(addr)
		is.NoErr(err)
		h, err := blake2b.New(20, nil)
		is.NoErr(err)
		h.Write(pub)
		is.Equal(hash, h.Sum(nil)) // key hash survives the tag and checksum

		sk, err := enc.PrivateKey(leaf.Key[:], pub)
		is.NoErr(err)
		is.Equal(sk, "edskS3wZrW6P38vvgnrHqjuLLz76vy5dv9QduxAQ2yG7WL5WjEubiJQUcwS49tFfwym1MBioLATPzQFckaYgGhWBUS7nmikuME")
	}

	_, err = NewTezosEncoder("tz2")
	is.True(err != nil)
	_, err = DecodeTezosAddress("tz1VQA4RP4fLjEEMW2FR4pE9kAg5abb5h5GM") // bad checksum
	is.True(err != nil)
}

func TestBase58Check(t *testing.T) {
	is := is.New(t)

	payload := []byte{1, 2, 3, 4, 5}
	enc := base58CheckEncode(TagTezosEd25519, payload)

	got, err := base58CheckDecode(enc, TagTezosEd25519)
	is.NoErr(err)
	is.Equal(got, payload)

	_, err = base58CheckDecode(enc, TagMavrykEd25519)
	is.True(err != nil) // wrong tag
	_, err = base58CheckDecode(enc, []byte{6, 161, 160})
	is.True(err != nil) // same version byte, different tail

	secret := make([]byte, 64)
	sk := base58CheckEncode(tagEd25519Secret, secret)
	is.Equal(sk[:4], "edsk")
	got, err = base58CheckDecode(sk, tagEd25519Secret)
	is.NoErr(err)
	is.Equal(got, secret)
}

func TestEncodersRejectBadLengths(t *testing.T) {
	is := is.New(t)

	tezos, err := NewTezosEncoder("tz1")
	is.NoErr(err)
	encoders := []AddressEncoder{
		CosmosEncoder{Prefix: "cosmos"},
		EthereumEncoder{},
		SolanaEncoder{},
		tezos,
		NostrEncoder{},
		BitcoinEncoder{},
	}

	for _, enc := range encoders {
		var encErr *EncodingError

		_, err := enc.PublicKey(make([]byte, 31))
		is.True(errors.As(err, &encErr))
		is.Equal(encErr.Chain, enc.Name())

		_, err = enc.Address(make([]byte, 5))
		is.True(errors.As(err, &encErr))

		_, err = enc.PrivateKey(make([]byte, 33), nil)
		is.True(errors.As(err, &encErr))
	}

	var encErr *EncodingError
	_, err = EthereumEncoder{}.PublicKey(make([]byte, 32)) // zero scalar
	is.True(errors.As(err, &encErr))
}
