// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package output writes derived wallets to per-chain files.
//
// For every chain a directory <dir>/<chain> holds wallets.txt (one address
// per line) and private_keys.txt (one exported private key per line). Line n
// of both files belongs to the same wallet. Chains with a second private key
// form (Solana's hex keypair) also get raw_private_keys.txt, aligned the same
// way. With JSON lines enabled, wallets.jsonl carries the full record.
//
// With per-seed lists enabled, <dir>/<chain>/seeds additionally holds
// seed_N_wallets.txt and seed_N_private_keys.txt for every seed phrase N.
package output

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	walletgen "github.com/Quincy-seun/Wallet-Generator-From-Seed-Phrase"
	"github.com/rs/zerolog"
)

// File names inside each chain directory.
const (
	WalletsFile     = "wallets.txt"
	PrivateKeysFile = "private_keys.txt"
	RawKeysFile     = "raw_private_keys.txt"
	JSONLinesFile   = "wallets.jsonl"
	SeedsDir        = "seeds"
)

// SeedFiles returns the per-seed address and private key file names for the
// 1-based seed number n.
func SeedFiles(n int) (wallets, keys string) {
	return fmt.Sprintf("seed_%d_wallets.txt", n), fmt.Sprintf("seed_%d_private_keys.txt", n)
}

// ErrClosed is returned when writing to a closed Writer.
var ErrClosed = errors.New("output writer is closed")

// Option configures a Writer.
type Option func(*Writer)

// WithJSONLines also writes wallets.jsonl for every chain.
func WithJSONLines() Option {
	return func(w *Writer) { w.jsonl = true }
}

// WithPerSeedFiles also writes per-seed address and private key lists.
func WithPerSeedFiles() Option {
	return func(w *Writer) { w.perSeed = true }
}

// WithLogger sets the logger used for file lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Writer) { w.log = l }
}

// Writer is a walletgen.Sink backed by files. It is safe for concurrent use;
// records of one chain are serialized by that chain's lock so the address and
// private key lines never drift apart.
type Writer struct {
	dir     string
	jsonl   bool
	perSeed bool
	log     zerolog.Logger

	mu     sync.Mutex
	closed bool
	chains map[string]*chainFiles
	order  []string
}

var _ walletgen.Sink = (*Writer)(nil)

type chainFiles struct {
	mu      sync.Mutex
	dir     string
	files   []*os.File
	wallets *bufio.Writer
	keys    *bufio.Writer
	raw     *bufio.Writer
	records *json.Encoder
	jbuf    *bufio.Writer
	count   int
	closed  bool

	// seed holds the open per-seed lists of the seed written last.
	seed *seedFiles
	// seen records seeds whose lists were already started, so a seed that
	// comes back appends instead of truncating.
	seen map[int]bool
}

type seedFiles struct {
	index   int
	files   []*os.File
	wallets *bufio.Writer
	keys    *bufio.Writer
}

// jsonRecord is the wallets.jsonl line format.
type jsonRecord struct {
	Seed       int    `json:"seed"`
	Chain      string `json:"chain"`
	Index      uint32 `json:"index"`
	Path       string `json:"path"`
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
	RawKey     string `json:"raw_private_key,omitempty"`
}

// Open prepares dir for output. Chain directories and files are created on
// the first record of each chain.
func Open(dir string, opts ...Option) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}
	w := &Writer{
		dir:    dir,
		log:    zerolog.Nop(),
		chains: make(map[string]*chainFiles),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Dir returns the output root.
func (w *Writer) Dir() string { return w.dir }

// Write appends rec to its chain's files.
func (w *Writer) Write(rec walletgen.Record) error {
	if rec.Err != nil {
		return fmt.Errorf("refusing to write failed record: %w", rec.Err)
	}

	cf, err := w.chain(rec.Chain, rec.RawPrivateKey != "")
	if err != nil {
		return err
	}

	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed {
		return ErrClosed
	}
	if (cf.raw != nil) != (rec.RawPrivateKey != "") {
		return fmt.Errorf("chain %s: raw private key present on some records only", rec.Chain)
	}
	if w.perSeed {
		if err := cf.switchSeed(rec.SeedIndex + 1); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(cf.wallets, rec.Address); err != nil {
		return fmt.Errorf("could not write address: %w", err)
	}
	if _, err := fmt.Fprintln(cf.keys, rec.PrivateKey); err != nil {
		return fmt.Errorf("could not write private key: %w", err)
	}
	if cf.raw != nil {
		if _, err := fmt.Fprintln(cf.raw, rec.RawPrivateKey); err != nil {
			return fmt.Errorf("could not write raw private key: %w", err)
		}
	}
	if cf.seed != nil {
		if _, err := fmt.Fprintln(cf.seed.wallets, rec.Address); err != nil {
			return fmt.Errorf("could not write seed address: %w", err)
		}
		if _, err := fmt.Fprintln(cf.seed.keys, rec.PrivateKey); err != nil {
			return fmt.Errorf("could not write seed private key: %w", err)
		}
	}
	if cf.records != nil {
		err := cf.records.Encode(jsonRecord{
			Seed:       rec.SeedIndex + 1,
			Chain:      rec.Chain,
			Index:      rec.AddressIndex,
			Path:       rec.Path,
			Address:    rec.Address,
			PrivateKey: rec.PrivateKey,
			RawKey:     rec.RawPrivateKey,
		})
		if err != nil {
			return fmt.Errorf("could not write json record: %w", err)
		}
	}
	cf.count++
	return nil
}

func (w *Writer) chain(name string, raw bool) (*chainFiles, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}
	if cf, ok := w.chains[name]; ok {
		return cf, nil
	}
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid chain name %q", name)
	}

	cf, err := w.openChain(name, raw)
	if err != nil {
		return nil, err
	}
	w.chains[name] = cf
	w.order = append(w.order, name)
	return cf, nil
}

func (w *Writer) openChain(name string, raw bool) (*chainFiles, error) {
	dir := filepath.Join(w.dir, name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create %s: %w", dir, err)
	}

	cf := &chainFiles{dir: dir, seen: make(map[int]bool)}
	open := func(file string) (*bufio.Writer, error) {
		f, err := openFile(filepath.Join(dir, file), false)
		if err != nil {
			return nil, err
		}
		cf.files = append(cf.files, f)
		return bufio.NewWriter(f), nil
	}

	var err error
	if cf.wallets, err = open(WalletsFile); err != nil {
		return nil, errors.Join(err, cf.close())
	}
	if cf.keys, err = open(PrivateKeysFile); err != nil {
		return nil, errors.Join(err, cf.close())
	}
	if raw {
		if cf.raw, err = open(RawKeysFile); err != nil {
			return nil, errors.Join(err, cf.close())
		}
	}
	if w.jsonl {
		if cf.jbuf, err = open(JSONLinesFile); err != nil {
			return nil, errors.Join(err, cf.close())
		}
		cf.records = json.NewEncoder(cf.jbuf)
	}

	w.log.Debug().Str("chain", name).Str("dir", dir).Msg("opened chain output")
	return cf, nil
}

// Counts returns the number of wallets written per chain.
func (w *Writer) Counts() map[string]int {
	w.mu.Lock()
	defer w.mu.Unlock()

	counts := make(map[string]int, len(w.chains))
	for name, cf := range w.chains {
		cf.mu.Lock()
		counts[name] = cf.count
		cf.mu.Unlock()
	}
	return counts
}

// Close flushes and closes every file. It is safe to call more than once.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for _, name := range w.order {
		cf := w.chains[name]
		cf.mu.Lock()
		if err := cf.close(); err != nil {
			errs = append(errs, fmt.Errorf("chain %s: %w", name, err))
		}
		w.log.Info().
			Str("chain", name).
			Int("wallets", cf.count).
			Str("dir", filepath.Join(w.dir, name)).
			Msg("saved wallets")
		cf.mu.Unlock()
	}
	return errors.Join(errs...)
}

func openFile(path string, appendTo bool) (*os.File, error) {
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendTo {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, 0o600)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// switchSeed makes seed n's lists the current per-seed output, closing the
// previous seed's lists. Batch output arrives seed by seed, so at most one
// pair of files is open per chain.
func (cf *chainFiles) switchSeed(n int) error {
	if cf.seed != nil && cf.seed.index == n {
		return nil
	}
	if cf.seed != nil {
		prev := cf.seed.index
		err := cf.seed.close()
		cf.seed = nil
		if err != nil {
			return fmt.Errorf("could not close seed %d lists: %w", prev, err)
		}
	}

	dir := filepath.Join(cf.dir, SeedsDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create %s: %w", dir, err)
	}

	sf := &seedFiles{index: n}
	walletsName, keysName := SeedFiles(n)
	for _, name := range []string{walletsName, keysName} {
		f, err := openFile(filepath.Join(dir, name), cf.seen[n])
		if err != nil {
			return errors.Join(err, sf.close())
		}
		sf.files = append(sf.files, f)
	}
	sf.wallets = bufio.NewWriter(sf.files[0])
	sf.keys = bufio.NewWriter(sf.files[1])
	cf.seen[n] = true
	cf.seed = sf
	return nil
}

func (sf *seedFiles) close() error {
	var errs []error
	for _, b := range []*bufio.Writer{sf.wallets, sf.keys} {
		if b != nil {
			errs = append(errs, b.Flush())
		}
	}
	for _, f := range sf.files {
		errs = append(errs, f.Close())
	}
	sf.files = nil
	return errors.Join(errs...)
}

func (cf *chainFiles) close() error {
	var errs []error
	if cf.seed != nil {
		errs = append(errs, cf.seed.close())
		cf.seed = nil
	}
	for _, b := range []*bufio.Writer{cf.wallets, cf.keys, cf.raw, cf.jbuf} {
		if b != nil {
			errs = append(errs, b.Flush())
		}
	}
	for _, f := range cf.files {
		errs = append(errs, f.Close())
	}
	cf.files = nil
	cf.closed = true
	return errors.Join(errs...)
}
