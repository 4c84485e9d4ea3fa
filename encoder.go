// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

// AddressEncoder turns a leaf private key into the public key, address and
// private key export format of one chain family. Implementations hold no
// mutable state and are safe for concurrent use.
type AddressEncoder interface {
	// Name identifies the encoder in errors.
	Name() string

	// Curve is the curve the chain's keys live on.
	Curve() Curve

	// PublicKey derives the public key in the form the address is built from.
	PublicKey(priv []byte) ([]byte, error)

	// Address encodes a public key returned by PublicKey.
	Address(pub []byte) (string, error)

	// PrivateKey renders the private key the way the chain's wallets import it.
	PrivateKey(priv, pub []byte) (string, error)
}

func checkLen(chain, what string, b []byte, want int) error {
	if len(b) != want {
		return encodingErrorf(chain, "%s must be %d bytes, got %d", what, want, len(b))
	}
	return nil
}

// RawKeyExporter is implemented by encoders whose chain also has a second,
// raw private key form. Wallets derived with such an encoder carry it in
// Wallet.RawPrivateKey.
type RawKeyExporter interface {
	RawPrivateKey(priv, pub []byte) (string, error)
}
