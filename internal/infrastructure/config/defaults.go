package config

const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)

	defaultLogLevel          = "info"
	defaultLogFormat         = "console"
	defaultLogMaxSizeMB      = 10
	defaultLogMaxBackups     = 3
	defaultLogMaxAgeDays     = 7
	defaultOSResponseDelayMs = 400
	defaultJournalRetention  = 30
	defaultMetricsNamespace  = "consent"
	defaultMetricsListenAddr = "127.0.0.1:9464"
)

// DefaultConfig returns the built-in configuration.
// Journal.Path and Logging.LogDir are resolved at load time from the XDG dirs.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:         defaultLogLevel,
			Format:        defaultLogFormat,
			EnableFileLog: true,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			MaxAge:        defaultLogMaxAgeDays,
			Compress:      true,
		},
		Prompt: PromptConfig{
			StrictTransitions: false,
			OfferEphemeral:    true,
			OSResponseDelayMs: defaultOSResponseDelayMs,
		},
		Journal: JournalConfig{
			Enabled:       true,
			RetentionDays: defaultJournalRetention,
		},
		Metrics: MetricsConfig{
			Enabled:    false,
			Namespace:  defaultMetricsNamespace,
			ListenAddr: defaultMetricsListenAddr,
		},
	}
}
