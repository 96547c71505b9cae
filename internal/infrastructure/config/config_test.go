package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Journal.Path = filepath.Join(t.TempDir(), journalName)
	cfg.Logging.LogDir = t.TempDir()
	return cfg
}

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv(homeEnv, "")
	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	return mgr, dir
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "info", mgr.viper.GetString("logging.level"))
	assert.True(t, mgr.viper.GetBool("prompt.offer_ephemeral"))
	assert.Equal(t, 400, mgr.viper.GetInt("prompt.os_response_delay_ms"))
	assert.Equal(t, "127.0.0.1:9464", mgr.viper.GetString("metrics.listen_addr"))
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "  DEBUG "
	cfg.Logging.Format = "JSON"
	cfg.Metrics.Namespace = " consent "

	normalizeConfig(cfg)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "consent", cfg.Metrics.Namespace)
}

func TestNormalizeConfig_UnknownFormatFallsBackToConsole(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Format = "xml"
	cfg.Logging.Level = ""

	normalizeConfig(cfg)

	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level must be one of",
		},
		{
			name:    "log size too small",
			mutate:  func(c *Config) { c.Logging.MaxSizeMB = 0 },
			wantErr: "logging.max_size_mb must be at least 1",
		},
		{
			name:    "negative os delay",
			mutate:  func(c *Config) { c.Prompt.OSResponseDelayMs = -1 },
			wantErr: "prompt.os_response_delay_ms must be at least 0",
		},
		{
			name:    "journal without path",
			mutate:  func(c *Config) { c.Journal.Path = "" },
			wantErr: "journal.path must be set",
		},
		{
			name: "disabled journal without path",
			mutate: func(c *Config) {
				c.Journal.Enabled = false
				c.Journal.Path = ""
			},
		},
		{
			name: "metrics bad address",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.ListenAddr = "not an address"
			},
			wantErr: "metrics.listen_addr must be a host:port address",
		},
		{
			name: "metrics bad namespace",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Namespace = "my-app"
			},
			wantErr: "metrics.namespace must be a valid Prometheus name",
		},
		{
			name: "metrics disabled ignores namespace",
			mutate: func(c *Config) {
				c.Metrics.Namespace = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "max_size_mb", toSnake("MaxSizeMB"))
	assert.Equal(t, "os_response_delay_ms", toSnake("OSResponseDelayMs"))
	assert.Equal(t, "level", toSnake("Level"))
}

func TestLoad_CreatesDefaultConfigFile(t *testing.T) {
	mgr, dir := newTestManager(t)

	require.NoError(t, mgr.Load())

	_, err := os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	cfg := mgr.Get()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Prompt.OfferEphemeral)
	assert.Equal(t, filepath.Join(dir, "data", appName, journalName), cfg.Journal.Path)
}

func TestLoad_ReadsFileAndEnvironment(t *testing.T) {
	mgr, dir := newTestManager(t)
	content := `
[prompt]
strict_transitions = true
os_response_delay_ms = 25

[journal]
enabled = false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), filePerm))
	t.Setenv("CONSENT_LOG_LEVEL", "debug")

	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.True(t, cfg.Prompt.StrictTransitions)
	assert.Equal(t, 25, cfg.Prompt.OSResponseDelayMs)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidFileFails(t *testing.T) {
	mgr, dir := newTestManager(t)
	content := `
[logging]
max_size_mb = 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), filePerm))

	err := mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.max_size_mb")
}

func TestGet_ReturnsCopy(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Prompt.StrictTransitions = true

	assert.False(t, mgr.Get().Prompt.StrictTransitions)
}

func TestGet_BeforeLoadReturnsDefaults(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Equal(t, DefaultConfig(), mgr.Get())
}

func TestGenerateSchemaFile(t *testing.T) {
	mgr, dir := newTestManager(t)

	path, err := mgr.GenerateSchemaFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, schemaFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Consent Configuration", doc["title"])
	assert.Contains(t, string(data), "os_response_delay_ms")
}

func TestChangedSections(t *testing.T) {
	prev := *DefaultConfig()
	assert.Empty(t, ChangedSections(prev, prev))

	next := prev
	next.Logging.Level = "debug"
	next.Metrics.Enabled = !prev.Metrics.Enabled
	assert.Equal(t, []string{"logging", "metrics"}, ChangedSections(prev, next))
}

func TestApplyFileChange(t *testing.T) {
	mgr, dir := newTestManager(t)
	require.NoError(t, mgr.Load())
	path := filepath.Join(dir, "config.toml")
	nop := zerolog.Nop()

	var calls []string
	mgr.OnConfigChange(func(prev, next Config) {
		calls = append(calls, prev.Logging.Level+"->"+next.Logging.Level)
	})

	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"warn\"\n"), filePerm))
	mgr.applyFileChange(&nop)
	assert.Equal(t, []string{"info->warn"}, calls)
	assert.Equal(t, "warn", mgr.Get().Logging.Level)

	// Unchanged content reloads silently.
	mgr.applyFileChange(&nop)
	assert.Len(t, calls, 1)

	require.NoError(t, os.WriteFile(path, []byte("[logging]\nmax_size_mb = 0\n"), filePerm))
	mgr.applyFileChange(&nop)
	assert.Len(t, calls, 1)
	assert.Equal(t, "warn", mgr.Get().Logging.Level)
}

func TestGetXDGDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv(homeEnv, "")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "cfg"))
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")

	dirs, err := GetXDGDirs()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cfg", appName), dirs.ConfigHome)
	assert.Equal(t, filepath.Join(home, ".local", "share", appName, journalName), dirs.JournalFile())
	assert.Equal(t, filepath.Join(home, ".local", "state", appName, "logs"), dirs.LogDir())

	t.Setenv(homeEnv, filepath.Join(home, "dev"))
	dirs, err = GetXDGDirs()
	require.NoError(t, err)
	assert.Equal(t, XDGDirs{
		ConfigHome: filepath.Join(home, "dev"),
		DataHome:   filepath.Join(home, "dev"),
		StateHome:  filepath.Join(home, "dev"),
	}, *dirs)
}
