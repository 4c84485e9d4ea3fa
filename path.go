// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"fmt"
	"strconv"
	"strings"
)

// HardenedOffset is the first hardened child index (2^31).
const HardenedOffset uint32 = 0x80000000

// PurposeBIP44 is the purpose level of BIP44 paths.
const PurposeBIP44 uint32 = 44

// DerivationPath is the sequence of child indices walked from the master key.
// Hardened indices carry HardenedOffset.
type DerivationPath []uint32

// NewDerivationPath builds the five level path
// m/purpose'/coinType'/account'/change/index. Purpose, coin type and account
// are hardened; change and index are not.
func NewDerivationPath(purpose, coinType, account, change, index uint32) DerivationPath {
	return DerivationPath{
		purpose | HardenedOffset,
		coinType | HardenedOffset,
		account | HardenedOffset,
		change,
		index,
	}
}

// Hardened returns a copy of the path with every segment hardened, which is
// the form ed25519 chains use.
func (p DerivationPath) Hardened() DerivationPath {
	out := make(DerivationPath, len(p))
	for i, idx := range p {
		out[i] = idx | HardenedOffset
	}
	return out
}

// String renders the path in the usual m/44'/60'/0'/0/0 notation.
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteByte('/')
		b.WriteString(formatIndex(idx))
	}
	return b.String()
}

func formatIndex(idx uint32) string {
	if idx >= HardenedOffset {
		return strconv.FormatUint(uint64(idx-HardenedOffset), 10) + "'"
	}
	return strconv.FormatUint(uint64(idx), 10)
}

// ParseDerivationPath parses a path such as "m/44'/60'/0'/0/0". Hardened
// segments may be marked with ', h or H. A bare "m" yields an empty path.
func ParseDerivationPath(path string) (DerivationPath, error) {
	path = strings.TrimSpace(path)
	if path != "m" && !strings.HasPrefix(path, "m/") {
		return nil, fmt.Errorf("invalid derivation path %q: must start with m/", path)
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(path, "m"), "/")
	if rest == "" {
		return DerivationPath{}, nil
	}

	segments := strings.Split(rest, "/")
	out := make(DerivationPath, 0, len(segments))
	for _, segment := range segments {
		hardened := false
		if strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h") || strings.HasSuffix(segment, "H") {
			hardened = true
			segment = segment[:len(segment)-1]
		}

		val, err := strconv.ParseUint(segment, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment %q: %w", segment, err)
		}
		idx := uint32(val)
		if hardened {
			if idx >= HardenedOffset {
				return nil, fmt.Errorf("invalid path segment %q: hardened index out of range", segment)
			}
			idx |= HardenedOffset
		}
		out = append(out, idx)
	}

	return out, nil
}

// DeriveKey folds child derivation over every segment of path, starting at
// master. The first failing segment is reported as a *PathDerivationError.
func DeriveKey(master ExtendedKey, path DerivationPath) (ExtendedKey, error) {
	current := master
	for i, idx := range path {
		child, err := current.Child(idx)
		if err != nil {
			return ExtendedKey{}, &PathDerivationError{Segment: i, Index: idx, Err: err}
		}
		current = child
	}
	return current, nil
}
