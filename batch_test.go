// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/tyler-smith/go-bip39"
)

type sliceSink struct {
	mu   sync.Mutex
	recs []Record
	fail int
}

func (s *sliceSink) Write(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail > 0 && len(s.recs) == s.fail {
		return errors.New("disk full")
	}
	s.recs = append(s.recs, rec)
	return nil
}

// fixedPhrases returns n valid 12-word phrases built from constant entropy.
func fixedPhrases(t *testing.T, n int) []string {
	t.Helper()
	phrases := make([]string, 0, n)
	for i := range n {
		m, err := bip39.NewMnemonic(bytes.Repeat([]byte{byte(i + 1)}, 16))
		if err != nil {
			t.Fatal(err)
		}
		phrases = append(phrases, m)
	}
	return phrases
}

func testChains(t *testing.T, names ...string) []*Chain {
	t.Helper()
	all, err := NewChains(DefaultChainConfigs())
	if err != nil {
		t.Fatal(err)
	}
	chains, err := SelectChains(all, names)
	if err != nil {
		t.Fatal(err)
	}
	return chains
}

func collect(ctx context.Context, b *Batch) []Record {
	var out []Record
	for rec := range b.Records(ctx) {
		out = append(out, rec)
	}
	return out
}

func TestBatchOrderAndContent(t *testing.T) {
	is := is.New(t)

	b := &Batch{
		Phrases: []string{abandonMnemonic, fixedPhrases(t, 1)[0]},
		Count:   3,
		Chains:  testChains(t, "ethereum", "solana"),
		Workers: 4,
	}
	recs := collect(context.Background(), b)
	is.Equal(len(recs), 2*2*3)

	i := 0
	for seed := range 2 {
		for _, chain := range []string{"ethereum", "solana"} {
			for idx := range uint32(3) {
				r := recs[i]
				is.NoErr(r.Err)
				is.Equal(r.SeedIndex, seed)
				is.Equal(r.Chain, chain)
				is.Equal(r.AddressIndex, idx)
				i++
			}
		}
	}

	is.Equal(recs[0].Address, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94")
	is.Equal(recs[0].Path, "m/44'/60'/0'/0/0")
	is.Equal(recs[1].Address, "0x6Fac4D18c912343BF86fa7049364Dd4E424Ab9C0")
	is.Equal(recs[3].Address, "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk")
	is.Equal(recs[4].Path, "m/44'/501'/1'/0'")
}

func TestBatchDeterministicAcrossWorkers(t *testing.T) {
	is := is.New(t)

	phrases := fixedPhrases(t, 6)
	chains := testChains(t, "cosmos", "ethereum", "tezos")

	var runs [][]Record
	for _, workers := range []int{0, 1, 3, 16} {
		b := &Batch{Phrases: phrases, Count: 4, Chains: chains, Workers: workers}
		runs = append(runs, collect(context.Background(), b))
	}
	for _, run := range runs[1:] {
		is.Equal(run, runs[0])
	}
}

func TestBatchUniqueAddresses(t *testing.T) {
	is := is.New(t)

	b := &Batch{
		Phrases: []string{abandonMnemonic},
		Count:   1000,
		Chains:  testChains(t, "ethereum", "solana"),
	}
	seen := make(map[string]bool)
	n := 0
	for rec := range b.Records(context.Background()) {
		is.NoErr(rec.Err)
		is.True(!seen[rec.Address]) // duplicate address
		seen[rec.Address] = true
		n++
	}
	is.Equal(n, 2000)
}

func TestBatchIsolatesMalformedSeed(t *testing.T) {
	is := is.New(t)

	phrases := fixedPhrases(t, 9)
	phrases = append(phrases[:4], append([]string{"abandon abandon abandon"}, phrases[4:]...)...)

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	sink := &sliceSink{}
	b := &Batch{
		Phrases: phrases,
		Count:   2,
		Chains:  testChains(t, "cosmos", "solana"),
		Workers: 3,
		Logger:  &logger,
	}

	summary, err := b.Run(context.Background(), sink)
	is.NoErr(err)
	is.Equal(summary.Seeds, 10)
	is.Equal(summary.Wallets, 9*2*2)
	is.Equal(len(sink.recs), 9*2*2)
	is.Equal(len(summary.Failures), 1)

	failed := summary.Failures[0]
	is.Equal(failed.SeedIndex, 4)
	is.Equal(failed.Chain, "")
	is.True(errors.Is(failed.Err, ErrMalformedSeedPhrase))
	is.True(bytes.Contains(logs.Bytes(), []byte(`"seed":5`)))

	for _, r := range sink.recs {
		is.True(r.SeedIndex != 4)
	}

	// the valid seeds produce exactly what they produce alone
	alone := &sliceSink{}
	_, err = (&Batch{Phrases: phrases[5:6], Count: 2, Chains: b.Chains}).Run(context.Background(), alone)
	is.NoErr(err)
	var fromBatch []string
	for _, r := range sink.recs {
		if r.SeedIndex == 5 {
			fromBatch = append(fromBatch, r.Address)
		}
	}
	var fromAlone []string
	for _, r := range alone.recs {
		fromAlone = append(fromAlone, r.Address)
	}
	is.Equal(fromBatch, fromAlone)
}

func TestBatchChainPrecondition(t *testing.T) {
	is := is.New(t)

	sol24, err := NewChain(ChainConfig{Name: "sol24", Family: FamilySolana, CoinType: 501, Layout: LayoutAccount, WordCounts: []int{24}})
	is.NoErr(err)

	b := &Batch{
		Phrases: []string{abandonMnemonic},
		Count:   5,
		Chains:  []*Chain{sol24, testChains(t, "ethereum")[0]},
	}
	recs := collect(context.Background(), b)
	is.Equal(len(recs), 1+5)
	is.Equal(recs[0].Chain, "sol24")
	is.True(errors.Is(recs[0].Err, ErrMalformedSeedPhrase))
	for _, r := range recs[1:] {
		is.NoErr(r.Err)
		is.Equal(r.Chain, "ethereum")
	}
}

func TestBatchCancelled(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &sliceSink{}
	b := &Batch{Phrases: fixedPhrases(t, 4), Count: 10, Chains: testChains(t, "ethereum"), Workers: 2}
	summary, err := b.Run(ctx, sink)
	is.True(errors.Is(err, context.Canceled))
	is.Equal(summary.Wallets, 0)
	is.Equal(len(sink.recs), 0)
}

func TestBatchEarlyBreak(t *testing.T) {
	is := is.New(t)

	b := &Batch{Phrases: fixedPhrases(t, 8), Count: 50, Chains: testChains(t, "cosmos"), Workers: 2}
	n := 0
	for rec := range b.Records(context.Background()) {
		is.NoErr(rec.Err)
		n++
		if n == 5 {
			break
		}
	}
	is.Equal(n, 5)
}

func TestBatchSinkErrorAborts(t *testing.T) {
	is := is.New(t)

	sink := &sliceSink{fail: 3}
	b := &Batch{Phrases: fixedPhrases(t, 2), Count: 5, Chains: testChains(t, "ethereum")}
	summary, err := b.Run(context.Background(), sink)
	is.True(err != nil)
	is.Equal(summary.Wallets, 3)
	is.Equal(len(sink.recs), 3)
}

func TestBatchEmpty(t *testing.T) {
	is := is.New(t)

	summary, err := (&Batch{Count: 5, Chains: testChains(t)}).Run(context.Background(), &sliceSink{})
	is.NoErr(err)
	is.Equal(summary.Wallets, 0)

	summary, err = (&Batch{Phrases: []string{abandonMnemonic}, Count: 0, Chains: testChains(t)}).Run(context.Background(), &sliceSink{})
	is.NoErr(err)
	is.Equal(summary.Wallets, 0)
	is.Equal(len(summary.Failures), 0)
}

func TestBatchCarriesRawPrivateKey(t *testing.T) {
	is := is.New(t)

	b := &Batch{
		Phrases: []string{abandonMnemonic},
		Count:   2,
		Chains:  testChains(t, "solana", "ethereum"),
	}
	recs := collect(context.Background(), b)
	is.Equal(len(recs), 4)

	for _, rec := range recs {
		is.NoErr(rec.Err)
		if rec.Chain == "solana" {
			w, err := b.Chains[0].Derive(abandonSeed(t), 0, 0, rec.AddressIndex)
			is.NoErr(err)
			is.Equal(rec.RawPrivateKey, w.RawPrivateKey)
			is.True(rec.RawPrivateKey != "")
		} else {
			is.Equal(rec.RawPrivateKey, "")
		}
	}
}
