// Package osperm simulates the operating system side of permission grants:
// per-capability OS grants, the system prompt and the settings screens.
package osperm

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
	"github.com/bnema/consent/internal/ui/mainloop"
)

// ErrSettingsUnavailable is returned when the capability settings screen cannot be opened.
var ErrSettingsUnavailable = errors.New("permission settings screen unavailable")

// Simulator implements port.OSPermissionRequester and port.SettingsLauncher.
// Answers are delivered on the UI loop through post.
type Simulator struct {
	mu      sync.Mutex
	post    mainloop.PostFunc
	delay   time.Duration
	after   func(time.Duration, func())
	granted map[entity.PermissionType]bool
	answers map[entity.PermissionType]bool

	settingsUnavailable bool
	openedSettings      []string
	requests            int
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithDelay sets how long the system prompt takes to answer.
func WithDelay(d time.Duration) Option {
	return func(s *Simulator) {
		s.delay = d
	}
}

// WithGranted marks types as already granted at the OS level.
func WithGranted(types ...entity.PermissionType) Option {
	return func(s *Simulator) {
		for _, t := range types {
			s.granted[t] = true
		}
	}
}

// WithAnswer scripts the user's answer to the system prompt for t.
// Unscripted types are granted.
func WithAnswer(t entity.PermissionType, grant bool) Option {
	return func(s *Simulator) {
		s.answers[t] = grant
	}
}

// WithSettingsUnavailable makes OpenPermissionSettings fail.
func WithSettingsUnavailable() Option {
	return func(s *Simulator) {
		s.settingsUnavailable = true
	}
}

// WithAfterFunc replaces time.AfterFunc.
func WithAfterFunc(after func(time.Duration, func())) Option {
	return func(s *Simulator) {
		s.after = after
	}
}

// NewSimulator creates a simulator that posts answers with post.
func NewSimulator(post mainloop.PostFunc, opts ...Option) *Simulator {
	s := &Simulator{
		post:    post,
		granted: make(map[entity.PermissionType]bool),
		answers: make(map[entity.PermissionType]bool),
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ port.OSPermissionRequester = (*Simulator)(nil)
	_ port.SettingsLauncher      = (*Simulator)(nil)
)

// RequestPermissions implements port.OSPermissionRequester.
func (s *Simulator) RequestPermissions(
	ctx context.Context,
	types []entity.PermissionType,
	callback port.OSPermissionCallback,
) bool {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	missing := s.missingLocked(types)
	if len(missing) == 0 {
		s.mu.Unlock()
		log.Debug().Strs("types", entity.PermissionTypesToStrings(types)).Msg("os permissions already granted")
		return false
	}
	s.requests++
	delay := s.delay
	s.mu.Unlock()

	log.Debug().
		Strs("missing", entity.PermissionTypesToStrings(missing)).
		Dur("delay", delay).
		Msg("showing os permission prompt")

	deliver := func() {
		if ctx.Err() != nil {
			log.Debug().Msg("os permission prompt cancelled")
			callback.OnCanceled()
			return
		}
		if s.answer(missing) {
			callback.OnAccepted()
			return
		}
		callback.OnCanceled()
	}

	if delay <= 0 {
		s.post(deliver)
		return true
	}
	s.after(delay, func() { s.post(deliver) })
	return true
}

// answer applies the scripted answers and reports whether every type was granted.
func (s *Simulator) answer(missing []entity.PermissionType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	granted := true
	for _, t := range missing {
		if grant, ok := s.answers[t]; ok && !grant {
			granted = false
			continue
		}
		s.granted[t] = true
	}
	return granted
}

func (s *Simulator) missingLocked(types []entity.PermissionType) []entity.PermissionType {
	var missing []entity.PermissionType
	for _, t := range types {
		if entity.NeedsOSPermission(t) && !s.granted[t] {
			missing = append(missing, t)
		}
	}
	return missing
}

// IsGranted reports the OS-level grant state of t.
func (s *Simulator) IsGranted(t entity.PermissionType) bool {
	if !entity.NeedsOSPermission(t) {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.granted[t]
}

// Revoke clears the OS-level grant of types.
func (s *Simulator) Revoke(types ...entity.PermissionType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range types {
		delete(s.granted, t)
	}
}

// Requests returns how many system prompts were shown.
func (s *Simulator) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// OpenPermissionSettings implements port.SettingsLauncher.
func (s *Simulator) OpenPermissionSettings(ctx context.Context, types []entity.PermissionType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settingsUnavailable {
		return ErrSettingsUnavailable
	}
	for _, t := range types {
		s.openedSettings = append(s.openedSettings, string(t))
	}
	logging.FromContext(ctx).Info().
		Strs("types", entity.PermissionTypesToStrings(types)).
		Msg("opened permission settings")
	return nil
}

// OpenAppSettings implements port.SettingsLauncher.
func (s *Simulator) OpenAppSettings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.openedSettings = append(s.openedSettings, "app")
	logging.FromContext(ctx).Info().Msg("opened app settings")
	return nil
}

// OpenedSettings returns the settings screens opened so far, "app" for the
// generic one.
func (s *Simulator) OpenedSettings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.openedSettings)
}

// ScenarioOptions translates the OS section of a scenario into simulator
// options. Scripted runs answer without delay.
func ScenarioOptions(sc entity.ScenarioOS) []Option {
	opts := []Option{WithDelay(0), WithGranted(sc.Granted...)}
	for _, t := range sc.Denied {
		opts = append(opts, WithAnswer(t, false))
	}
	if sc.SettingsUnavailable {
		opts = append(opts, WithSettingsUnavailable())
	}
	return opts
}
