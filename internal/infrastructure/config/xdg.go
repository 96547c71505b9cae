package config

import (
	"os"
	"path/filepath"
)

const (
	appName     = "consent"
	journalName = "journal.sqlite"

	// homeEnv puts config, data and state under one directory. Used for
	// development checkouts and tests.
	homeEnv = "CONSENT_HOME"
)

// XDGDirs are consent's directories under the XDG base directories.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
}

// LogDir is where rotated log files go.
func (d XDGDirs) LogDir() string { return filepath.Join(d.StateHome, "logs") }

// JournalFile is the default outcome journal location.
func (d XDGDirs) JournalFile() string { return filepath.Join(d.DataHome, journalName) }

// xdgBase resolves one base directory: the variable when set, else the
// fallback under the home directory.
func xdgBase(env, home string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// GetXDGDirs resolves consent's config, data and state directories, which
// default to ~/.config/consent, ~/.local/share/consent and
// ~/.local/state/consent.
func GetXDGDirs() (*XDGDirs, error) {
	if root := os.Getenv(homeEnv); root != "" {
		return &XDGDirs{ConfigHome: root, DataHome: root, StateHome: root}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &XDGDirs{
		ConfigHome: filepath.Join(xdgBase("XDG_CONFIG_HOME", home, ".config"), appName),
		DataHome:   filepath.Join(xdgBase("XDG_DATA_HOME", home, ".local", "share"), appName),
		StateHome:  filepath.Join(xdgBase("XDG_STATE_HOME", home, ".local", "state"), appName),
	}, nil
}

// GetConfigDir returns the directory holding config.toml.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetLogDir returns the default log directory.
func GetLogDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.LogDir(), nil
}

// GetJournalFile returns the default outcome journal path.
func GetJournalFile() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.JournalFile(), nil
}

// EnsureDirectories creates consent's config, data and state directories.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
