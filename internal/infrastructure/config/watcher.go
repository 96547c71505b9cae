package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/bnema/consent/internal/logging"
)

// ChangeFunc receives the configuration in force before and after a reload.
type ChangeFunc func(prev, next Config)

// ChangedSections names the top-level tables that differ between prev and next.
func ChangedSections(prev, next Config) []string {
	var changed []string
	if prev.Logging != next.Logging {
		changed = append(changed, "logging")
	}
	if prev.Prompt != next.Prompt {
		changed = append(changed, "prompt")
	}
	if prev.Journal != next.Journal {
		changed = append(changed, "journal")
	}
	if prev.Metrics != next.Metrics {
		changed = append(changed, "metrics")
	}
	return changed
}

// Watch reloads the file whenever fsnotify reports a write. An edit that
// fails validation is logged and the previous configuration stays.
func (m *Manager) Watch(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching {
		return nil
	}

	log := logging.FromContext(logging.WithComponent(ctx, "config"))
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Stringer("op", e.Op).Str("file", e.Name).Msg("config file event")
		m.applyFileChange(log)
	})
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

// OnConfigChange registers fn for every successful reload that changed something.
func (m *Manager) OnConfigChange(fn ChangeFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

func (m *Manager) applyFileChange(log *zerolog.Logger) {
	m.mu.Lock()
	prev := *m.config
	if err := m.viper.ReadInConfig(); err != nil {
		m.mu.Unlock()
		log.Warn().Err(err).Msg("config unreadable, keeping previous values")
		return
	}
	next, err := m.build()
	if err != nil {
		m.mu.Unlock()
		log.Warn().Err(err).Msg("config invalid, keeping previous values")
		return
	}
	m.config = next
	callbacks := append([]ChangeFunc(nil), m.callbacks...)
	m.mu.Unlock()

	changed := ChangedSections(prev, *next)
	if len(changed) == 0 {
		return
	}
	log.Info().Strs("sections", changed).Msg("config reloaded")
	for _, fn := range callbacks {
		fn(prev, *next)
	}
}
