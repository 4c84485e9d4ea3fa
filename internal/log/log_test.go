// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	is := is.New(t)
	is.Equal(ParseLevel("debug"), zerolog.DebugLevel)
	is.Equal(ParseLevel(" WARN "), zerolog.WarnLevel)
	is.Equal(ParseLevel("error"), zerolog.ErrorLevel)
	is.Equal(ParseLevel("off"), zerolog.Disabled)
	is.Equal(ParseLevel("nonsense"), zerolog.InfoLevel)
}

func TestInitJSONComponents(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	Init(&buf, "debug", true)
	t.Cleanup(func() { Init(&bytes.Buffer{}, "info", false) })

	Batch.Info().Str("chain", "cosmos").Msg("hello")

	var line map[string]any
	is.NoErr(json.Unmarshal(buf.Bytes(), &line))
	is.Equal(line["component"], "batch")
	is.Equal(line["chain"], "cosmos")
	is.Equal(line["message"], "hello")
	is.Equal(line["level"], "info")
}

func TestInitLevelFilters(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	Init(&buf, "error", true)
	t.Cleanup(func() { Init(&bytes.Buffer{}, "info", false) })

	Output.Info().Msg("dropped")
	is.Equal(buf.Len(), 0)

	Output.Error().Msg("kept")
	is.True(bytes.Contains(buf.Bytes(), []byte(`"component":"output"`)))
}
