package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bnema/consent/internal/cli/styles"
	"github.com/bnema/consent/internal/logging"
)

const logFileName = logging.DefaultFileName

var (
	logsFollow   bool
	logsLines    int
	logsRequest  string
	logsLevel    string
	logsClearAll bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the prompt log",
	Long: `Print the log written while 'consent prompt' owns the terminal.

JSON lines are reformatted and colored by level. --request keeps the lines
logged about one permission request, --level drops everything below a level.`,
	Example: `  consent logs -n 200
  consent logs --request 7f1c --level debug
  consent logs -f`,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "keep printing lines as they are written")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "number of lines to show, 0 for all")
	logsCmd.Flags().StringVar(&logsRequest, "request", "", "only lines about this request id")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "minimum level to show")
}

func runLogs(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	path := filepath.Join(a.Config.Logging.LogDir, logFileName)
	filter := logFilter{requestID: logsRequest, minLevel: zerolog.TraceLevel}
	if logsLevel != "" {
		filter.minLevel = logging.ParseLevel(logsLevel)
	}
	view := logView{w: cmd.OutOrStdout(), theme: a.Theme, filter: filter}

	if logsFollow {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return view.follow(ctx, path)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(view.w, a.Theme.Subtle.Render("No log yet at "+path))
		return nil
	}
	return view.tail(path, logsLines)
}

// logEntry is the part of a zerolog JSON line the viewer shows.
type logEntry struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	Error     string `json:"error"`
	Component string `json:"component"`
	RequestID string `json:"request_id"`
}

func parseLogLine(line string) (logEntry, bool) {
	var e logEntry
	if json.Unmarshal([]byte(line), &e) != nil || e.Level == "" {
		return logEntry{}, false
	}
	return e, true
}

// logFilter keeps lines about one request and at or above a level. Lines
// that are not JSON pass only when no request is asked for.
type logFilter struct {
	requestID string
	minLevel  zerolog.Level
}

func (f logFilter) keep(line string) bool {
	e, ok := parseLogLine(line)
	if !ok {
		return f.requestID == ""
	}
	if f.requestID != "" && e.RequestID != f.requestID {
		return false
	}
	return logging.ParseLevel(e.Level) >= f.minLevel
}

type logView struct {
	w      io.Writer
	theme  *styles.Theme
	filter logFilter
}

func (v logView) print(line string) {
	if v.filter.keep(line) {
		fmt.Fprintln(v.w, colorizeLogLine(line, v.theme))
	}
}

// tail prints the last n kept lines of the file, all of them when n <= 0.
func (v logView) tail(path string, n int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	var kept []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); v.filter.keep(line) {
			kept = append(kept, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	if n > 0 && len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	for _, line := range kept {
		fmt.Fprintln(v.w, colorizeLogLine(line, v.theme))
	}
	return nil
}

// follow prints lines appended to path until ctx ends. The directory is
// watched so a rotation, which renames the file and starts a new one, is
// followed onto the new file.
func (v logView) follow(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch log: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	fmt.Fprintln(v.w, v.theme.Subtle.Render("Following "+path+" (Ctrl+C to stop)"))

	t := &logTail{path: path}
	defer t.close()
	if err := t.open(true); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch log: %w", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if err := t.open(false); err != nil {
					return err
				}
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				if err := t.drain(v.print); err != nil {
					return err
				}
			}
		}
	}
}

// logTail reads complete lines appended to a file, carrying partial ones.
type logTail struct {
	path    string
	file    *os.File
	reader  *bufio.Reader
	pending string
}

// open (re)opens the file; atEnd skips what is already there.
func (t *logTail) open(atEnd bool) error {
	t.close()
	file, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if atEnd {
		if _, err := file.Seek(0, io.SeekEnd); err != nil {
			_ = file.Close()
			return fmt.Errorf("seek log: %w", err)
		}
	}
	t.file, t.reader, t.pending = file, bufio.NewReader(file), ""
	return nil
}

func (t *logTail) drain(emit func(string)) error {
	if t.reader == nil {
		return nil
	}
	for {
		chunk, err := t.reader.ReadString('\n')
		t.pending += chunk
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read log: %w", err)
		}
		emit(strings.TrimSuffix(t.pending, "\n"))
		t.pending = ""
	}
}

func (t *logTail) close() {
	if t.file != nil {
		_ = t.file.Close()
		t.file, t.reader = nil, nil
	}
}

var levelLabels = map[zerolog.Level]string{
	zerolog.TraceLevel: "TRC",
	zerolog.DebugLevel: "DBG",
	zerolog.InfoLevel:  "INF",
	zerolog.WarnLevel:  "WRN",
	zerolog.ErrorLevel: "ERR",
	zerolog.FatalLevel: "FTL",
	zerolog.PanicLevel: "PNC",
}

func levelStyle(level zerolog.Level, theme *styles.Theme) func(...string) string {
	switch {
	case level >= zerolog.ErrorLevel:
		return theme.ErrorStyle.Render
	case level == zerolog.WarnLevel:
		return theme.WarningStyle.Render
	case level == zerolog.InfoLevel:
		return theme.Highlight.Render
	default:
		return theme.Subtle.Render
	}
}

// colorizeLogLine reformats a zerolog JSON line; other lines are colored by
// the level marker they contain.
func colorizeLogLine(line string, theme *styles.Theme) string {
	e, ok := parseLogLine(line)
	if !ok {
		for _, level := range []zerolog.Level{zerolog.ErrorLevel, zerolog.WarnLevel, zerolog.DebugLevel} {
			if strings.Contains(line, levelLabels[level]) || strings.Contains(line, strings.ToUpper(level.String())) {
				return levelStyle(level, theme)(line)
			}
		}
		return line
	}

	level := logging.ParseLevel(e.Level)
	label, known := levelLabels[level]
	if !known {
		label = e.Level
	}
	clock := e.Time
	if t, err := time.Parse(time.RFC3339, e.Time); err == nil {
		clock = t.Format("15:04:05")
	}

	parts := []string{theme.Subtle.Render(clock), levelStyle(level, theme)(label)}
	if e.Component != "" {
		parts = append(parts, theme.Subtle.Render("["+e.Component+"]"))
	}
	parts = append(parts, e.Message)
	if e.Error != "" {
		parts = append(parts, theme.ErrorStyle.Render("error="+e.Error))
	}
	if e.RequestID != "" {
		parts = append(parts, theme.Subtle.Render("request="+e.RequestID))
	}
	return strings.Join(parts, " ")
}

// LogFile describes one file of the log directory.
type LogFile struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
	Current bool
}

// listLogFiles returns the current log and its backups, newest first.
func listLogFiles(logDir string) ([]LogFile, error) {
	entries, err := os.ReadDir(logDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	var files []LogFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), logFileName) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, LogFile{
			Name:    entry.Name(),
			Path:    filepath.Join(logDir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Current: entry.Name() == logFileName,
		})
	}
	slices.SortFunc(files, func(a, b LogFile) int { return b.ModTime.Compare(a.ModTime) })
	return files, nil
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove old log files",
	Long: `Remove rotated log files older than logging.max_age days (7 when unset).
--all removes every backup and the current log too.`,
	RunE: runLogsClear,
}

func init() {
	logsCmd.AddCommand(logsClearCmd)
	logsClearCmd.Flags().BoolVar(&logsClearAll, "all", false, "remove all logs")
}

func runLogsClear(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	files, err := listLogFiles(a.Config.Logging.LogDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, a.Theme.Subtle.Render("No logs to clear"))
		return nil
	}

	maxAge := a.Config.Logging.MaxAge
	if maxAge <= 0 {
		maxAge = 7
	}

	removed := 0
	for _, f := range clearableLogs(files, logsClearAll, time.Now().AddDate(0, 0, -maxAge)) {
		if err := os.Remove(f.Path); err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", a.Theme.ErrorStyle.Render(styles.IconX), f.Name, err)
			continue
		}
		fmt.Fprintf(out, "%s %s (%s)\n", a.Theme.SuccessStyle.Render(styles.IconCheck), f.Name, formatSize(f.Size))
		removed++
	}

	if removed == 0 {
		fmt.Fprintln(out, a.Theme.Subtle.Render(fmt.Sprintf("No logs older than %d days", maxAge)))
		return nil
	}
	fmt.Fprintln(out, a.Theme.SuccessStyle.Render(fmt.Sprintf("Cleared %d file(s)", removed)))
	return nil
}

// clearableLogs picks the files to delete. The current log only goes with all.
func clearableLogs(files []LogFile, all bool, cutoff time.Time) []LogFile {
	return slices.DeleteFunc(slices.Clone(files), func(f LogFile) bool {
		return !all && (f.Current || !f.ModTime.Before(cutoff))
	})
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
