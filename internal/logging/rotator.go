package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultFileName is the active log file inside the log directory.
const DefaultFileName = "consent.log"

const (
	logDirPerm  = 0o750
	logFilePerm = 0o600
	bytesPerMB  = 1024 * 1024
)

// RotatorConfig configures a LogRotator.
type RotatorConfig struct {
	Dir        string
	FileName   string // defaults to DefaultFileName
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LogRotator is an io.Writer that rolls its file over once it grows past MaxSizeMB.
// Used when the terminal belongs to the TUI and logs cannot go to stderr.
type LogRotator struct {
	mu   sync.Mutex
	cfg  RotatorConfig
	file *os.File
	size int64
	now  func() time.Time
}

// NewLogRotator opens (or creates) the current log file.
func NewLogRotator(cfg RotatorConfig) (*LogRotator, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("log directory cannot be empty")
	}
	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if err := os.MkdirAll(cfg.Dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &LogRotator{cfg: cfg, now: time.Now}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the path of the active log file.
func (r *LogRotator) Path() string {
	return filepath.Join(r.cfg.Dir, r.cfg.FileName)
}

func (r *LogRotator) open() error {
	if info, err := os.Stat(r.Path()); err == nil {
		r.size = info.Size()
	} else {
		r.size = 0
	}

	file, err := os.OpenFile(r.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.file = file
	return nil
}

func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	if r.size > 0 && r.size+int64(len(p)) > int64(r.cfg.MaxSizeMB)*bytesPerMB {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if err := r.file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close log file: %v\n", err)
	}
	r.file = nil

	backup := fmt.Sprintf("%s.%s", r.Path(), r.now().Format("2006-01-02-15-04-05.000"))
	if err := os.Rename(r.Path(), backup); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.cfg.Compress {
		if err := gzipFile(backup); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compress %s: %v\n", backup, err)
		} else if err := os.Remove(backup); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove %s: %v\n", backup, err)
		}
	}

	r.prune()
	return r.open()
}

func gzipFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(path+".gz", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// prune drops backups older than MaxAgeDays, then the oldest beyond MaxBackups.
func (r *LogRotator) prune() {
	entries, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		return
	}

	maxAge := time.Duration(r.cfg.MaxAgeDays) * 24 * time.Hour
	var backups []os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), r.cfg.FileName+".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if maxAge > 0 && r.now().Sub(info.ModTime()) > maxAge {
			_ = os.Remove(filepath.Join(r.cfg.Dir, entry.Name()))
			continue
		}
		backups = append(backups, info)
	}

	if r.cfg.MaxBackups <= 0 || len(backups) <= r.cfg.MaxBackups {
		return
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime().Before(backups[j].ModTime())
	})
	for _, info := range backups[:len(backups)-r.cfg.MaxBackups] {
		_ = os.Remove(filepath.Join(r.cfg.Dir, info.Name()))
	}
}

// Close closes the active file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
