// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package output

import (
	"fmt"
	"slices"
	"sync"

	walletgen "github.com/Quincy-seun/Wallet-Generator-From-Seed-Phrase"
)

// Memory is a walletgen.Sink that keeps addresses and private keys in
// memory, aligned by position per chain.
type Memory struct {
	mu     sync.Mutex
	addrs  map[string][]string
	keys   map[string][]string
	raw    map[string][]string
	chains []string
}

var _ walletgen.Sink = (*Memory)(nil)

// NewMemory returns an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{
		addrs: make(map[string][]string),
		keys:  make(map[string][]string),
		raw:   make(map[string][]string),
	}
}

func (m *Memory) Write(rec walletgen.Record) error {
	if rec.Err != nil {
		return fmt.Errorf("refusing to write failed record: %w", rec.Err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.addrs[rec.Chain]; !ok {
		m.chains = append(m.chains, rec.Chain)
	}
	m.addrs[rec.Chain] = append(m.addrs[rec.Chain], rec.Address)
	m.keys[rec.Chain] = append(m.keys[rec.Chain], rec.PrivateKey)
	if rec.RawPrivateKey != "" {
		m.raw[rec.Chain] = append(m.raw[rec.Chain], rec.RawPrivateKey)
	}
	return nil
}

// Chains returns chain names in the order they were first written.
func (m *Memory) Chains() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.chains)
}

// Addresses returns a copy of the addresses written for chain.
func (m *Memory) Addresses(chain string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.addrs[chain])
}

// PrivateKeys returns a copy of the private keys written for chain.
func (m *Memory) PrivateKeys(chain string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.keys[chain])
}

// RawPrivateKeys returns a copy of the raw private keys written for chain.
func (m *Memory) RawPrivateKeys(chain string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.raw[chain])
}
