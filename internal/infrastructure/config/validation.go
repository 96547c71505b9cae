package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var metricNamespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateConfig checks field constraints declared in struct tags, then the
// rules that span several fields.
func validateConfig(config *Config) error {
	var validationErrors []string

	if err := validate.Struct(config); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			validationErrors = append(validationErrors, describeFieldError(fe))
		}
	}

	validationErrors = append(validationErrors, validateJournal(config)...)
	validationErrors = append(validationErrors, validateMetrics(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

// describeFieldError renders "logging.format must be one of: console json".
func describeFieldError(fe validator.FieldError) string {
	// Namespace is "Config.Logging.Format"; the file uses snake_case keys.
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	key := strings.Join(parts, ".")

	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", key, fe.Param(), fmt.Sprint(fe.Value()))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "hostname_port":
		return fmt.Sprintf("%s must be a host:port address (got %q)", key, fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isUpper(c) {
			b.WriteByte(c)
			continue
		}
		// Keep acronyms together: MaxSizeMB -> max_size_mb, OSResponse -> os_response.
		if i > 0 && (!isUpper(s[i-1]) || (i+1 < len(s) && !isUpper(s[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteByte(c + ('a' - 'A'))
	}
	return b.String()
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func validateJournal(config *Config) []string {
	if config.Journal.Enabled && config.Journal.Path == "" {
		return []string{"journal.path must be set when the journal is enabled"}
	}
	return nil
}

func validateMetrics(config *Config) []string {
	if !config.Metrics.Enabled {
		return nil
	}

	var validationErrors []string
	if !metricNamespacePattern.MatchString(config.Metrics.Namespace) {
		validationErrors = append(validationErrors, "metrics.namespace must be a valid Prometheus name")
	}
	if config.Metrics.ListenAddr == "" {
		validationErrors = append(validationErrors, "metrics.listen_addr must be set when metrics are enabled")
	}
	return validationErrors
}
