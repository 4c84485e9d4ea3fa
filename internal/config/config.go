// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package config loads walletgen run settings from flags, environment
// variables (prefixed WALLETGEN_) and an optional YAML file, in that order
// of precedence.
//
// The YAML file may also carry a chains list. Entries whose name matches a
// built-in chain replace it; other entries are appended to the table:
//
//	chains:
//	  - name: osmosis
//	    family: cosmos
//	    coin_type: 118
//	    prefix: osmo
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	walletgen "github.com/Quincy-seun/Wallet-Generator-From-Seed-Phrase"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "WALLETGEN"

// Config holds the settings of one derive run.
type Config struct {
	Input      string `mapstructure:"input"`
	Out        string `mapstructure:"out"`
	Count      uint32 `mapstructure:"count"`
	Workers    int    `mapstructure:"workers"`
	Language   string `mapstructure:"language"`
	Passphrase string `mapstructure:"passphrase"`
	JSONLines  bool   `mapstructure:"jsonl"`
	PerSeed    bool   `mapstructure:"per_seed"`
	LogLevel   string `mapstructure:"log_level"`
	LogJSON    bool   `mapstructure:"log_json"`

	// EnabledChains selects chains by name. Empty means every chain.
	EnabledChains []string `mapstructure:"enabled_chains"`

	// ChainTable extends or overrides the built-in chain table.
	ChainTable []walletgen.ChainConfig `mapstructure:"chains"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"input":      "input",
	"out":        "out",
	"count":      "count",
	"workers":    "workers",
	"language":   "language",
	"passphrase": "passphrase",
	"jsonl":      "jsonl",
	"per-seed":   "per_seed",
	"log-level":  "log_level",
	"log-json":   "log_json",
	"chains":     "enabled_chains",
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "seedphrase.txt")
	v.SetDefault("out", "wallets")
	v.SetDefault("count", 1)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("language", "en")
	v.SetDefault("passphrase", "")
	v.SetDefault("jsonl", false)
	v.SetDefault("per_seed", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
	v.SetDefault("enabled_chains", []string{})
}

// BindFlags binds every known flag present in flags to its config key.
// Flags the set does not define are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("could not bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file and decodes the merged settings. An explicit
// file must exist; without one, walletgen.yaml is looked up in the working
// directory and silently skipped when absent.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("walletgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the run settings.
func (c *Config) Validate() error {
	if c.Count == 0 {
		return fmt.Errorf("count must be greater than 0")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Out == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}

// ChainConfigs merges the configured chain table into the built-in one.
func (c *Config) ChainConfigs() []walletgen.ChainConfig {
	cfgs := walletgen.DefaultChainConfigs()
	for _, override := range c.ChainTable {
		name := strings.ToLower(strings.TrimSpace(override.Name))
		replaced := false
		for i := range cfgs {
			if cfgs[i].Name == name {
				cfgs[i] = override
				replaced = true
				break
			}
		}
		if !replaced {
			cfgs = append(cfgs, override)
		}
	}
	return cfgs
}

// Chains builds the merged chain table and returns the enabled chains in
// the order they were selected.
func (c *Config) Chains() ([]*walletgen.Chain, error) {
	all, err := walletgen.NewChains(c.ChainConfigs())
	if err != nil {
		return nil, err
	}
	return walletgen.SelectChains(all, splitList(c.EnabledChains))
}

// splitList flattens entries that still hold comma separated values, as
// environment variables do.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for part := range strings.SplitSeq(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
