// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSeedLength is returned when a master key is requested from a
	// seed that is not exactly SeedSize bytes.
	ErrInvalidSeedLength = errors.New("invalid seed length")

	// ErrInvalidChildKey is returned when a derivation step yields a scalar
	// that is zero or not below the curve order. The index is not retried.
	ErrInvalidChildKey = errors.New("invalid child key")

	// ErrNonHardenedEd25519 is returned when a non-hardened index is used on
	// an ed25519 key. SLIP-0010 only defines hardened derivation for ed25519.
	ErrNonHardenedEd25519 = errors.New("ed25519 only supports hardened derivation")

	// ErrMalformedSeedPhrase is returned for empty seed phrases, phrases the
	// BIP39 primitive rejects, and phrases whose word count a chain refuses.
	ErrMalformedSeedPhrase = errors.New("malformed seed phrase")
)

// PathDerivationError reports the path segment at which a derivation failed.
// Segment is 0-based; Index is the raw child index including the hardened bit.
type PathDerivationError struct {
	Segment int
	Index   uint32
	Err     error
}

func (e *PathDerivationError) Error() string {
	return fmt.Sprintf("path derivation failed at segment %d (%s): %v", e.Segment, formatIndex(e.Index), e.Err)
}

func (e *PathDerivationError) Unwrap() error {
	return e.Err
}

// EncodingError is returned by address encoders when a key cannot be encoded,
// for example because it has the wrong length.
type EncodingError struct {
	Chain  string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("could not encode %s key: %s", e.Chain, e.Reason)
}

func encodingErrorf(chain, format string, args ...any) error {
	return &EncodingError{Chain: chain, Reason: fmt.Sprintf(format, args...)}
}
