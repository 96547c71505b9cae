// Package config loads the consent configuration from TOML, the environment
// and built-in defaults, and watches the file for changes.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	configDir string
	mu        sync.RWMutex
	callbacks []ChangeFunc
	watching  bool
}

// NewManager creates a configuration manager reading from the XDG config dir.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config directory: %w", err)
	}
	return NewManagerWithDir(configDir)
}

// NewManagerWithDir creates a configuration manager reading config.toml from dir.
func NewManagerWithDir(dir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	// CONSENT_JOURNAL_PATH, CONSENT_METRICS_ENABLED, ...
	v.SetEnvPrefix("CONSENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names for the two settings most often overridden.
	for key, env := range map[string]string{
		"logging.level":  "CONSENT_LOG_LEVEL",
		"logging.format": "CONSENT_LOG_FORMAT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		configDir: dir,
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.build()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

// readConfigFile reads config.toml, writing the defaults there first when
// the file does not exist yet.
func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		return nil
	case !errors.As(err, &notFound):
		return fmt.Errorf("read %s: %w", m.ConfigFilePath(), err)
	}

	if err := m.createDefaultConfig(); err != nil {
		return fmt.Errorf("write default config in %s: %w", m.configDir, err)
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read default config: %w", err)
	}
	return nil
}

// build decodes the viper state, fills derived paths, normalizes and validates.
func (m *Manager) build() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.ConfigFilePath(), err)
	}
	if err := ensurePaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func ensurePaths(config *Config) error {
	if config.Journal.Path == "" {
		path, err := GetJournalFile()
		if err != nil {
			return fmt.Errorf("resolve journal path: %w", err)
		}
		config.Journal.Path = path
	}
	if config.Logging.LogDir == "" {
		dir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("resolve log directory: %w", err)
		}
		config.Logging.LogDir = dir
	}
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}

	switch strings.ToLower(strings.TrimSpace(config.Logging.Format)) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = defaultLogFormat
	}

	config.Metrics.Namespace = strings.TrimSpace(config.Metrics.Namespace)
	config.Metrics.ListenAddr = strings.TrimSpace(config.Metrics.ListenAddr)
	config.Journal.Path = strings.TrimSpace(config.Journal.Path)
}

// Get returns a copy of the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// ConfigFilePath returns where config.toml is expected.
func (m *Manager) ConfigFilePath() string {
	return filepath.Join(m.configDir, "config.toml")
}

// createDefaultConfig writes the defaults to config.toml.
func (m *Manager) createDefaultConfig() error {
	configFile := m.ConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("write %s: %w", configFile, err)
	}
	return nil
}

// setDefaults registers every leaf of DefaultConfig under its dotted
// mapstructure key, such as "journal.retention_days".
func (m *Manager) setDefaults() {
	for key, value := range defaultKeys(reflect.ValueOf(*DefaultConfig()), "") {
		m.viper.SetDefault(key, value)
	}
}

func defaultKeys(v reflect.Value, prefix string) map[string]any {
	keys := make(map[string]any)
	for i := range v.NumField() {
		key := v.Type().Field(i).Tag.Get("mapstructure")
		if prefix != "" {
			key = prefix + "." + key
		}
		field := v.Field(i)
		if field.Kind() == reflect.Struct {
			maps.Copy(keys, defaultKeys(field, key))
			continue
		}
		keys[key] = field.Interface()
	}
	return keys
}

var globalManager *Manager

// Init initializes the global configuration manager.
func Init() error {
	if globalManager != nil {
		return nil
	}

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("create consent directories: %w", err)
	}

	manager, err := NewManager()
	if err != nil {
		return err
	}
	if err := manager.Load(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Get returns the global configuration, or the defaults before Init.
func Get() *Config {
	if globalManager == nil {
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global manager, or nil before Init.
func GetManager() *Manager {
	return globalManager
}
