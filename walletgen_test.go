// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestNewSeed(t *testing.T) {
	is := is.New(t)

	seed, err := NewSeed(abandonMnemonic, "")
	is.NoErr(err)
	is.Equal(len(seed), SeedSize)
	is.Equal(hex.EncodeToString(seed), "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4")

	// BIP39 reference vector with passphrase "TREZOR".
	seed, err = NewSeed(abandonMnemonic, "TREZOR")
	is.NoErr(err)
	is.Equal(hex.EncodeToString(seed), "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04")
}

func TestNewSeedNormalizesWhitespace(t *testing.T) {
	is := is.New(t)

	want, err := NewSeed(abandonMnemonic, "")
	is.NoErr(err)
	got, err := NewSeed("  abandon abandon\tabandon abandon abandon abandon abandon abandon abandon abandon abandon   about\n", "")
	is.NoErr(err)
	is.Equal(got, want)
}

func TestNewSeedMalformed(t *testing.T) {
	is := is.New(t)

	for _, phrase := range []string{
		"",
		"   ",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", // checksum
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon notaword",
		"abandon about",
	} {
		_, err := NewSeed(phrase, "")
		is.True(errors.Is(err, ErrMalformedSeedPhrase))
	}
}

func TestNewMnemonic(t *testing.T) {
	is := is.New(t)

	for words := range entropySizes {
		m, err := NewMnemonic(words)
		is.NoErr(err)
		is.Equal(WordCount(m), words)
		_, err = NewSeed(m, "")
		is.NoErr(err)
	}

	a, err := NewMnemonic(12)
	is.NoErr(err)
	b, err := NewMnemonic(12)
	is.NoErr(err)
	is.True(a != b)

	for _, words := range []int{0, 11, 13, 16, 25} {
		_, err := NewMnemonic(words)
		is.True(err != nil)
	}
}

func TestNormalizeSeedPhrase(t *testing.T) {
	is := is.New(t)
	is.Equal(NormalizeSeedPhrase("  a \t b\n\nc "), "a b c")
	is.Equal(NormalizeSeedPhrase(""), "")
	is.Equal(WordCount(" a  b c "), 3)
}
