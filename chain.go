// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Family names the address scheme a chain uses.
type Family string

const (
	FamilyCosmos   Family = "cosmos"
	FamilyEthereum Family = "ethereum"
	FamilySolana   Family = "solana"
	FamilyTezos    Family = "tezos"
	FamilyNostr    Family = "nostr"
	FamilyBitcoin  Family = "bitcoin"
)

// Layout decides which path level the per-wallet index occupies.
type Layout string

const (
	// LayoutBIP44 walks m/purpose'/coin'/account'/change/index.
	LayoutBIP44 Layout = "bip44"
	// LayoutAccount walks m/purpose'/coin'/index'/change', the layout Phantom
	// (Solana) and Temple (Tezos) use for their account list.
	LayoutAccount Layout = "account"
)

// ChainConfig describes one target chain. It is plain data so it can be read
// from a config file.
type ChainConfig struct {
	Name     string `mapstructure:"name"`
	Family   Family `mapstructure:"family"`
	CoinType uint32 `mapstructure:"coin_type"`
	// Purpose defaults to 44.
	Purpose uint32 `mapstructure:"purpose"`
	// Prefix is the bech32 HRP for cosmos and bitcoin chains and the address
	// prefix (tz1, mv1) for tezos chains.
	Prefix string `mapstructure:"prefix"`
	Layout Layout `mapstructure:"layout"`
	// WordCounts optionally restricts the seed phrase lengths the chain accepts.
	WordCounts []int `mapstructure:"word_counts"`
}

// DefaultChainConfigs returns the built-in chain table.
func DefaultChainConfigs() []ChainConfig {
	return []ChainConfig{
		{Name: "cosmos", Family: FamilyCosmos, CoinType: 118, Prefix: "cosmos"},
		{Name: "babylon", Family: FamilyCosmos, CoinType: 118, Prefix: "bbn"},
		{Name: "stride", Family: FamilyCosmos, CoinType: 118, Prefix: "stride"},
		{Name: "stargaze", Family: FamilyCosmos, CoinType: 118, Prefix: "stars"},
		{Name: "ethereum", Family: FamilyEthereum, CoinType: 60},
		{Name: "solana", Family: FamilySolana, CoinType: 501, Layout: LayoutAccount},
		{Name: "mavryk", Family: FamilyTezos, CoinType: 1729, Prefix: "mv1", Layout: LayoutAccount},
		{Name: "tezos", Family: FamilyTezos, CoinType: 1729, Prefix: "tz1", Layout: LayoutAccount},
		{Name: "nostr", Family: FamilyNostr, CoinType: 1237},
		{Name: "bitcoin", Family: FamilyBitcoin, CoinType: 0, Purpose: 84, Prefix: "bc"},
	}
}

// Chain is a validated ChainConfig bound to its encoder.
type Chain struct {
	ChainConfig
	Encoder AddressEncoder
}

// NewChain validates cfg, fills defaults and builds the matching encoder.
func NewChain(cfg ChainConfig) (*Chain, error) {
	cfg.Name = strings.ToLower(strings.TrimSpace(cfg.Name))
	if cfg.Name == "" {
		return nil, fmt.Errorf("chain name is required")
	}
	if cfg.Purpose == 0 {
		cfg.Purpose = PurposeBIP44
	}
	if cfg.Layout == "" {
		cfg.Layout = LayoutBIP44
	}
	if cfg.Layout != LayoutBIP44 && cfg.Layout != LayoutAccount {
		return nil, fmt.Errorf("chain %s: unknown layout %q", cfg.Name, cfg.Layout)
	}
	if cfg.Purpose >= HardenedOffset || cfg.CoinType >= HardenedOffset {
		return nil, fmt.Errorf("chain %s: purpose and coin type must be below 2^31", cfg.Name)
	}
	for _, n := range cfg.WordCounts {
		if _, ok := entropySizes[n]; !ok {
			return nil, fmt.Errorf("chain %s: invalid word count %d", cfg.Name, n)
		}
	}

	enc, err := newEncoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("chain %s: %w", cfg.Name, err)
	}
	return &Chain{ChainConfig: cfg, Encoder: enc}, nil
}

func newEncoder(cfg ChainConfig) (AddressEncoder, error) {
	switch cfg.Family {
	case FamilyCosmos:
		if cfg.Prefix == "" {
			return nil, fmt.Errorf("cosmos chains need a bech32 prefix")
		}
		if cfg.Prefix != strings.ToLower(cfg.Prefix) {
			return nil, fmt.Errorf("bech32 prefix %q must be lowercase", cfg.Prefix)
		}
		return CosmosEncoder{Prefix: cfg.Prefix}, nil
	case FamilyEthereum:
		return EthereumEncoder{}, nil
	case FamilySolana:
		return SolanaEncoder{}, nil
	case FamilyTezos:
		return NewTezosEncoder(cfg.Prefix)
	case FamilyNostr:
		return NostrEncoder{}, nil
	case FamilyBitcoin:
		params, err := bitcoinParams(cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return BitcoinEncoder{Params: params}, nil
	default:
		return nil, fmt.Errorf("unknown chain family %q", cfg.Family)
	}
}

func bitcoinParams(hrp string) (*chaincfg.Params, error) {
	for _, p := range []*chaincfg.Params{
		&chaincfg.MainNetParams,
		&chaincfg.TestNet3Params,
		&chaincfg.RegressionNetParams,
		&chaincfg.SigNetParams,
	} {
		if (hrp == "" && p == &chaincfg.MainNetParams) || p.Bech32HRPSegwit == hrp {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown bitcoin bech32 prefix %q", hrp)
}

// NewChains builds every config in order. Chain names must be unique.
func NewChains(cfgs []ChainConfig) ([]*Chain, error) {
	chains := make([]*Chain, 0, len(cfgs))
	seen := make(map[string]bool, len(cfgs))
	for _, cfg := range cfgs {
		c, err := NewChain(cfg)
		if err != nil {
			return nil, err
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate chain %q", c.Name)
		}
		seen[c.Name] = true
		chains = append(chains, c)
	}
	return chains, nil
}

// SelectChains returns the chains with the given names, in the order the
// names are listed. An empty name list selects every chain.
func SelectChains(chains []*Chain, names []string) ([]*Chain, error) {
	if len(names) == 0 {
		return chains, nil
	}
	out := make([]*Chain, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		idx := slices.IndexFunc(chains, func(c *Chain) bool { return c.Name == name })
		if idx < 0 {
			return nil, fmt.Errorf("unknown chain %q", name)
		}
		out = append(out, chains[idx])
	}
	return out, nil
}

// Path returns the derivation path of the wallet at index. In the account
// layout the index occupies the account level, so account must be 0.
func (c *Chain) Path(account, change, index uint32) (DerivationPath, error) {
	if account >= HardenedOffset {
		return nil, fmt.Errorf("chain %s: account must be below 2^31", c.Name)
	}

	var path DerivationPath
	switch c.Layout {
	case LayoutAccount:
		if account != 0 {
			return nil, fmt.Errorf("chain %s: account must be 0 in the account layout", c.Name)
		}
		path = DerivationPath{
			c.Purpose | HardenedOffset,
			c.CoinType | HardenedOffset,
			index | HardenedOffset,
			change | HardenedOffset,
		}
	default:
		path = NewDerivationPath(c.Purpose, c.CoinType, account, change, index)
	}

	// Hardening an index that already carries the hardened bit would alias
	// it with a lower index.
	if c.Layout == LayoutAccount || c.Encoder.Curve() == Ed25519 {
		if index >= HardenedOffset || change >= HardenedOffset {
			return nil, fmt.Errorf("chain %s: indices must be below 2^31", c.Name)
		}
	}

	if c.Encoder.Curve() == Ed25519 {
		path = path.Hardened()
	}
	return path, nil
}

// CheckPhrase enforces the chain's word count restriction, if any.
func (c *Chain) CheckPhrase(phrase string) error {
	if len(c.WordCounts) == 0 {
		return nil
	}
	n := WordCount(phrase)
	if !slices.Contains(c.WordCounts, n) {
		return fmt.Errorf("%w: %s accepts %v words, got %d", ErrMalformedSeedPhrase, c.Name, c.WordCounts, n)
	}
	return nil
}

// Wallet is one derived key pair with its chain encodings.
type Wallet struct {
	Chain      string
	Path       DerivationPath
	PrivateKey []byte
	PublicKey  []byte
	Address    string
	// ExportedKey is the private key in the chain's import format.
	ExportedKey string
	// RawPrivateKey is the second export form of chains whose encoder is a
	// RawKeyExporter, empty otherwise.
	RawPrivateKey string
}

// Derive derives the wallet at (account, change, index) from a BIP39 seed.
func (c *Chain) Derive(seed []byte, account, change, index uint32) (*Wallet, error) {
	master, err := NewMasterKey(seed, c.Encoder.Curve())
	if err != nil {
		return nil, err
	}
	return c.DeriveFromMaster(master, account, change, index)
}

// DeriveFromMaster is Derive for callers that already hold the master key of
// the chain's curve.
func (c *Chain) DeriveFromMaster(master ExtendedKey, account, change, index uint32) (*Wallet, error) {
	if master.Curve != c.Encoder.Curve() {
		return nil, fmt.Errorf("chain %s needs a %s master key, got %s", c.Name, c.Encoder.Curve(), master.Curve)
	}

	path, err := c.Path(account, change, index)
	if err != nil {
		return nil, err
	}

	leaf, err := DeriveKey(master, path)
	if err != nil {
		return nil, err
	}

	priv := leaf.Key[:]
	pub, err := c.Encoder.PublicKey(priv)
	if err != nil {
		return nil, err
	}
	addr, err := c.Encoder.Address(pub)
	if err != nil {
		return nil, err
	}
	exported, err := c.Encoder.PrivateKey(priv, pub)
	if err != nil {
		return nil, err
	}
	var raw string
	if rx, ok := c.Encoder.(RawKeyExporter); ok {
		if raw, err = rx.RawPrivateKey(priv, pub); err != nil {
			return nil, err
		}
	}

	return &Wallet{
		Chain:         c.Name,
		Path:          path,
		PrivateKey:    priv,
		PublicKey:     pub,
		Address:       addr,
		ExportedKey:   exported,
		RawPrivateKey: raw,
	}, nil
}
