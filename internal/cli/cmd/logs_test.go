package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/consent/internal/cli/styles"
)

func TestListLogFiles_NewestFirst(t *testing.T) {
	logDir := t.TempDir()
	now := time.Now()

	write := func(name string, age time.Duration) {
		path := filepath.Join(logDir, name)
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o600))
		require.NoError(t, os.Chtimes(path, now.Add(-age), now.Add(-age)))
	}
	write(logFileName, 0)
	write(logFileName+".2026-01-01-00-00-00.000.gz", 48*time.Hour)
	write(logFileName+".2026-01-02-00-00-00.000.gz", 24*time.Hour)
	write("unrelated.txt", 0)

	files, err := listLogFiles(logDir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.True(t, files[0].Current)
	assert.Equal(t, logFileName+".2026-01-02-00-00-00.000.gz", files[1].Name)
}

func TestListLogFiles_MissingDir(t *testing.T) {
	files, err := listLogFiles(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestClearableLogs(t *testing.T) {
	now := time.Now()
	files := []LogFile{
		{Name: "current", Current: true, ModTime: now.AddDate(0, 0, -30)},
		{Name: "old", ModTime: now.AddDate(0, 0, -30)},
		{Name: "fresh", ModTime: now},
	}

	cutoff := now.AddDate(0, 0, -7)
	names := func(fs []LogFile) []string {
		var out []string
		for _, f := range fs {
			out = append(out, f.Name)
		}
		return out
	}

	assert.Equal(t, []string{"old"}, names(clearableLogs(files, false, cutoff)))
	assert.Equal(t, []string{"current", "old", "fresh"}, names(clearableLogs(files, true, cutoff)))
}

func TestLogViewTail_LastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), logFileName)
	lines := []string{
		`{"level":"info","time":"2026-01-01T10:00:00Z","message":"one"}`,
		`{"level":"warn","time":"2026-01-01T10:00:01Z","message":"two","component":"queue"}`,
		`{"level":"debug","time":"2026-01-01T10:00:02Z","message":"three","request_id":"geo"}`,
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))

	var out bytes.Buffer
	view := logView{w: &out, theme: styles.NewTheme(), filter: logFilter{minLevel: zerolog.TraceLevel}}
	require.NoError(t, view.tail(path, 2))

	got := out.String()
	assert.NotContains(t, got, "one")
	assert.Contains(t, got, "two")
	assert.Contains(t, got, "[queue]")
	assert.Contains(t, got, "request=geo")
}

func TestColorizeLogLine_PlainText(t *testing.T) {
	theme := styles.NewTheme()
	assert.Equal(t, "hello", colorizeLogLine("hello", theme))
	assert.Contains(t, colorizeLogLine("10:00 ERR boom", theme), "boom")
}

func TestLogFilter(t *testing.T) {
	info := `{"level":"info","message":"queued","request_id":"r1"}`
	debug := `{"level":"debug","message":"state","request_id":"r2"}`
	plain := "panic: boom"

	all := logFilter{minLevel: zerolog.TraceLevel}
	assert.True(t, all.keep(info))
	assert.True(t, all.keep(debug))
	assert.True(t, all.keep(plain))

	byRequest := logFilter{requestID: "r1", minLevel: zerolog.TraceLevel}
	assert.True(t, byRequest.keep(info))
	assert.False(t, byRequest.keep(debug))
	assert.False(t, byRequest.keep(plain))

	infoUp := logFilter{minLevel: zerolog.InfoLevel}
	assert.True(t, infoUp.keep(info))
	assert.False(t, infoUp.keep(debug))
}

func TestLogTail_ReadsAppendedLinesAcrossRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), logFileName)
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

	tail := &logTail{path: path}
	t.Cleanup(tail.close)
	require.NoError(t, tail.open(true))

	var got []string
	emit := func(line string) { got = append(got, line) }

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("first\npart")
	require.NoError(t, err)
	require.NoError(t, tail.drain(emit))
	assert.Equal(t, []string{"first"}, got)

	_, err = f.WriteString("ial\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, tail.drain(emit))
	assert.Equal(t, []string{"first", "partial"}, got)

	require.NoError(t, os.Rename(path, path+".1"))
	require.NoError(t, os.WriteFile(path, []byte("fresh\n"), 0o600))
	require.NoError(t, tail.open(false))
	require.NoError(t, tail.drain(emit))
	assert.Equal(t, []string{"first", "partial", "fresh"}, got)
}

func TestColorizeLogLine_ShowsError(t *testing.T) {
	line := colorizeLogLine(`{"level":"error","message":"journal write failed","error":"disk full"}`, styles.NewTheme())
	assert.Contains(t, line, "journal write failed")
	assert.Contains(t, line, "error=disk full")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KiB", formatSize(1536))
	assert.Equal(t, "2.0 MiB", formatSize(2*1024*1024))
}
