// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package seedfile reads and writes seed phrase lists.
//
// The input format is one seed phrase per line. Blank lines are ignored, as
// are the "Seed Phrase N (W words):" headers that Write emits, so a file
// produced by the generate command can be fed straight back in.
package seedfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"

	walletgen "github.com/Quincy-seun/Wallet-Generator-From-Seed-Phrase"
)

var headerRe = regexp.MustCompile(`^Seed Phrase \d+ \(\d+ words\):$`)

// Read returns the seed phrases in r in file order, whitespace normalized.
// Phrases are not validated here; a malformed line is still returned so that
// it can fail on its own during derivation.
func Read(r io.Reader) ([]string, error) {
	var phrases []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := walletgen.NormalizeSeedPhrase(sc.Text())
		if line == "" || headerRe.MatchString(line) {
			continue
		}
		phrases = append(phrases, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read seed phrases: %w", err)
	}
	return phrases, nil
}

// Load reads the seed phrases in the file at path. A path of "-" reads
// standard input.
func Load(path string) ([]string, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	// G304: path is user-provided input, which is expected for a CLI tool
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck
	return Read(f)
}

// Write emits phrases in the generated file format:
//
//	Seed Phrase 1 (12 words):
//	<phrase>
//
// Numbering starts at 1.
func Write(w io.Writer, phrases []string) error {
	bw := bufio.NewWriter(w)
	for i, p := range phrases {
		if _, err := fmt.Fprintf(bw, "Seed Phrase %d (%d words):\n%s\n\n", i+1, walletgen.WordCount(p), p); err != nil {
			return fmt.Errorf("could not write seed phrase: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write seed phrases: %w", err)
	}
	return nil
}

// Generate returns n fresh mnemonics of wordCount words.
func Generate(n, wordCount int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("number of seed phrases must be greater than 0, got %d", n)
	}
	phrases := make([]string, 0, n)
	for range n {
		p, err := walletgen.NewMnemonic(wordCount)
		if err != nil {
			return nil, err
		}
		phrases = append(phrases, p)
	}
	return phrases, nil
}
