// Package component provides terminal UI components for the permission prompt.
package component

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/consent/internal/cli/styles"
	"github.com/bnema/consent/internal/logging"
)

const (
	toastDismissTimeout = 2500 * time.Millisecond
	maxToasts           = 3
)

// ToastLevel selects the color of a toast.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

func (l ToastLevel) String() string {
	switch l {
	case ToastSuccess:
		return "success"
	case ToastWarning:
		return "warning"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

func (l ToastLevel) style(theme *styles.Theme) lipgloss.Style {
	switch l {
	case ToastSuccess:
		return theme.SuccessStyle
	case ToastWarning:
		return theme.WarningStyle
	case ToastError:
		return theme.ErrorStyle
	default:
		return theme.Highlight
	}
}

// ToastOptions configures one toast.
type ToastOptions struct {
	Duration time.Duration // 0 keeps the toast until Hide
}

// ToastOption adjusts ToastOptions.
type ToastOption func(*ToastOptions)

// WithDuration sets how long the toast stays up.
func WithDuration(d time.Duration) ToastOption {
	return func(o *ToastOptions) { o.Duration = d }
}

type toast struct {
	message   string
	level     ToastLevel
	repeats   int
	expiresAt time.Time // zero: until Hide
}

// Toaster keeps the last few notification lines, oldest first. Showing the
// message already at the bottom bumps its counter and timer instead of
// adding a line.
type Toaster struct {
	mu     sync.Mutex
	toasts []toast
	now    func() time.Time
}

// NewToaster creates a toaster using the wall clock.
func NewToaster() *Toaster {
	return &Toaster{now: time.Now}
}

// Show adds message at level.
func (t *Toaster) Show(ctx context.Context, message string, level ToastLevel, opts ...ToastOption) {
	options := ToastOptions{Duration: toastDismissTimeout}
	for _, opt := range opts {
		opt(&options)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var expires time.Time
	if options.Duration > 0 {
		expires = t.now().Add(options.Duration)
	}
	t.pruneLocked()
	if n := len(t.toasts); n > 0 && t.toasts[n-1].message == message && t.toasts[n-1].level == level {
		t.toasts[n-1].repeats++
		t.toasts[n-1].expiresAt = expires
	} else {
		t.toasts = append(t.toasts, toast{message: message, level: level, repeats: 1, expiresAt: expires})
		if len(t.toasts) > maxToasts {
			t.toasts = t.toasts[len(t.toasts)-maxToasts:]
		}
	}

	logging.FromContext(ctx).Debug().
		Str("toast", message).
		Stringer("toast_level", level).
		Dur("duration", options.Duration).
		Msg("toast shown")
}

// Hide clears every toast.
func (t *Toaster) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toasts = nil
}

// Visible reports whether any toast is still up.
func (t *Toaster) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked()
	return len(t.toasts) > 0
}

func (t *Toaster) pruneLocked() {
	now := t.now()
	kept := t.toasts[:0]
	for _, ts := range t.toasts {
		if ts.expiresAt.IsZero() || now.Before(ts.expiresAt) {
			kept = append(kept, ts)
		}
	}
	t.toasts = kept
}

// View renders one line per live toast, or "" when there are none.
func (t *Toaster) View(theme *styles.Theme) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked()

	lines := make([]string, 0, len(t.toasts))
	for _, ts := range t.toasts {
		text := ts.message
		if ts.repeats > 1 {
			text = fmt.Sprintf("%s (x%d)", text, ts.repeats)
		}
		lines = append(lines, ts.level.style(theme).Render(text))
	}
	return strings.Join(lines, "\n")
}
