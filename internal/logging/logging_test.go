package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), input)
	}
}

func TestContextHelpersAddFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "permission_queue")
	ctx = WithRequest(ctx, "req-1", "", "tab-3")

	FromContext(ctx).Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "permission_queue", entry[FieldComponent])
	assert.Equal(t, "req-1", entry[FieldRequestID])
	assert.Equal(t, "tab-3", entry[FieldWindowID])
	assert.NotContains(t, entry, FieldOrigin, "empty values are left out")
	assert.Equal(t, "hello", entry["message"])
}

func TestFromContextWithoutLoggerIsNoop(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	log.Info().Msg("dropped")
}

func TestLogRotatorRollsOverAndPrunes(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(RotatorConfig{Dir: dir, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	chunk := []byte(strings.Repeat("x", bytesPerMB-10) + "\n")
	for i := 0; i < 3; i++ {
		_, err := r.Write(chunk)
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "consent.log.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups, "only MaxBackups rotated files are kept")
	assert.FileExists(t, filepath.Join(dir, "consent.log"))
	assert.Equal(t, filepath.Join(dir, "consent.log"), r.Path())
}

func TestNewLogRotatorRequiresDir(t *testing.T) {
	_, err := NewLogRotator(RotatorConfig{})
	assert.Error(t, err)
}
