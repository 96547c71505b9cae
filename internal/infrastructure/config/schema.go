package config

// Config is the full consent configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	Prompt  PromptConfig  `mapstructure:"prompt" yaml:"prompt" toml:"prompt" json:"prompt"`
	Journal JournalConfig `mapstructure:"journal" yaml:"journal" toml:"journal" json:"journal"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" toml:"metrics" json:"metrics"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" validate:"oneof=trace debug info warn warning error disabled off" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=off"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" validate:"oneof=console json" jsonschema:"enum=console,enum=json"`

	// File output, used whenever the terminal is owned by the prompt UI.
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" validate:"gte=1,lte=1024"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups" validate:"gte=0"`
	MaxAge        int    `mapstructure:"max_age" yaml:"max_age" toml:"max_age" json:"max_age" validate:"gte=0"`
	Compress      bool   `mapstructure:"compress" yaml:"compress" toml:"compress" json:"compress"`
}

// PromptConfig controls the dialog queue.
type PromptConfig struct {
	// StrictTransitions panics on dialog contract violations. Meant for development.
	StrictTransitions bool `mapstructure:"strict_transitions" yaml:"strict_transitions" toml:"strict_transitions" json:"strict_transitions"`
	// OfferEphemeral allows the "allow this time" button when a request asks for it.
	OfferEphemeral bool `mapstructure:"offer_ephemeral" yaml:"offer_ephemeral" toml:"offer_ephemeral" json:"offer_ephemeral"`
	// OSResponseDelayMs is how long the simulated OS permission prompt takes to answer.
	OSResponseDelayMs int `mapstructure:"os_response_delay_ms" yaml:"os_response_delay_ms" toml:"os_response_delay_ms" json:"os_response_delay_ms" validate:"gte=0,lte=60000"`
}

// JournalConfig controls the SQLite outcome journal.
type JournalConfig struct {
	Enabled       bool   `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	Path          string `mapstructure:"path" yaml:"path" toml:"path" json:"path"`
	RetentionDays int    `mapstructure:"retention_days" yaml:"retention_days" toml:"retention_days" json:"retention_days" validate:"gte=0"`
}

// MetricsConfig controls the Prometheus exporter.
type MetricsConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	Namespace  string `mapstructure:"namespace" yaml:"namespace" toml:"namespace" json:"namespace"`
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr" toml:"listen_addr" json:"listen_addr" validate:"omitempty,hostname_port"`
}
