// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package walletgen

import (
	"context"
	"fmt"
	"iter"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Record is the outcome of one (seed phrase, chain, address index) tuple.
// Failed tuples carry Err and no key material. A seed phrase that cannot be
// turned into a seed at all yields a single record with an empty Chain.
type Record struct {
	SeedIndex    int
	Chain        string
	AddressIndex uint32
	Path         string
	Address      string
	PrivateKey   string
	// RawPrivateKey is set for chains with a second private key form.
	RawPrivateKey string
	Err           error
}

// Sink receives successful records. Implementations serialize writes per
// destination.
type Sink interface {
	Write(rec Record) error
}

// Summary reports what a Run produced.
type Summary struct {
	Seeds    int
	Wallets  int
	Failures []Record
}

// Batch derives Count wallets per chain for every seed phrase, with account
// and change fixed at 0.
type Batch struct {
	Phrases    []string
	Count      uint32
	Chains     []*Chain
	Passphrase string

	// Workers is the number of seed phrases prepared concurrently. Output
	// order does not depend on it.
	Workers int

	Logger *zerolog.Logger
}

func (b *Batch) logger() *zerolog.Logger {
	if b.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return b.Logger
}

// Records returns the lazy sequence of records ordered by seed phrase, then
// chain, then address index. Seed phrases are processed by up to Workers
// goroutines, but at most 2*Workers seeds are prepared ahead of the consumer.
// The sequence stops early when ctx is cancelled or the consumer breaks out.
func (b *Batch) Records(ctx context.Context) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		ctx, cancel := context.WithCancel(ctx)

		workers := max(b.Workers, 1)
		results := make([]chan []Record, len(b.Phrases))
		for i := range results {
			results[i] = make(chan []Record, 1)
		}
		ahead := make(chan struct{}, 2*workers)

		var g errgroup.Group
		g.SetLimit(workers)

		producerDone := make(chan struct{})
		go func() {
			defer close(producerDone)
			for i, phrase := range b.Phrases {
				select {
				case ahead <- struct{}{}:
				case <-ctx.Done():
					return
				}
				g.Go(func() error {
					results[i] <- b.seedRecords(ctx, i, phrase)
					return nil
				})
			}
		}()

		defer func() {
			cancel()
			<-producerDone
			_ = g.Wait()
		}()

		for i := range b.Phrases {
			var recs []Record
			select {
			case recs = <-results[i]:
			case <-ctx.Done():
				return
			}
			<-ahead

			for _, rec := range recs {
				if ctx.Err() != nil {
					return
				}
				if !yield(rec) {
					return
				}
			}
		}
	}
}

// seedRecords derives every (chain, index) tuple of one seed phrase. It
// returns early, with what it has, when ctx is cancelled.
func (b *Batch) seedRecords(ctx context.Context, seedIndex int, phrase string) []Record {
	phrase = NormalizeSeedPhrase(phrase)
	seed, err := NewSeed(phrase, b.Passphrase)
	if err != nil {
		return []Record{{SeedIndex: seedIndex, Err: err}}
	}

	recs := make([]Record, 0, min(len(b.Chains)*int(b.Count), 4096))
	masters := make(map[Curve]ExtendedKey, 2)

	for _, c := range b.Chains {
		if ctx.Err() != nil {
			return recs
		}

		if err := c.CheckPhrase(phrase); err != nil {
			recs = append(recs, Record{SeedIndex: seedIndex, Chain: c.Name, Err: err})
			continue
		}

		curve := c.Encoder.Curve()
		master, ok := masters[curve]
		if !ok {
			master, err = NewMasterKey(seed, curve)
			if err != nil {
				recs = append(recs, Record{SeedIndex: seedIndex, Chain: c.Name, Err: err})
				continue
			}
			masters[curve] = master
		}

		for idx := uint32(0); idx < b.Count; idx++ {
			if ctx.Err() != nil {
				return recs
			}
			recs = append(recs, deriveRecord(c, master, seedIndex, idx))
		}
	}

	b.logger().Debug().
		Int("seed", seedIndex).
		Int("records", len(recs)).
		Msg("seed phrase processed")
	return recs
}

func deriveRecord(c *Chain, master ExtendedKey, seedIndex int, idx uint32) Record {
	rec := Record{SeedIndex: seedIndex, Chain: c.Name, AddressIndex: idx}
	if path, err := c.Path(0, 0, idx); err == nil {
		rec.Path = path.String()
	}

	w, err := c.DeriveFromMaster(master, 0, 0, idx)
	if err != nil {
		rec.Err = err
		return rec
	}
	rec.Address = w.Address
	rec.PrivateKey = w.ExportedKey
	rec.RawPrivateKey = w.RawPrivateKey
	return rec
}

// Run drains Records into sink. Per-tuple failures are logged and collected
// in the summary without stopping the run; only a sink error or cancellation
// aborts it.
func (b *Batch) Run(ctx context.Context, sink Sink) (Summary, error) {
	log := b.logger()
	summary := Summary{Seeds: len(b.Phrases)}

	for rec := range b.Records(ctx) {
		if rec.Err != nil {
			ev := log.Error().Err(rec.Err).Int("seed", rec.SeedIndex+1)
			if rec.Chain != "" {
				ev = ev.Str("chain", rec.Chain).Uint32("index", rec.AddressIndex)
			}
			ev.Msg("wallet derivation failed")
			summary.Failures = append(summary.Failures, rec)
			continue
		}

		if err := sink.Write(rec); err != nil {
			return summary, fmt.Errorf("could not write %s wallet %d of seed %d: %w", rec.Chain, rec.AddressIndex, rec.SeedIndex+1, err)
		}
		summary.Wallets++
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}
