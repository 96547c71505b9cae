// Package window tracks the surfaces permission requests belong to.
package window

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/bnema/consent/internal/domain/entity"
)

// ErrWindowExists is returned when opening a window whose id is taken.
var ErrWindowExists = errors.New("window already open")

// Window is one surface. It implements entity.WindowRef; a closed window
// stays invalid forever, even if a new one reuses its id.
type Window struct {
	id     string
	closed atomic.Bool
}

var _ entity.WindowRef = (*Window)(nil)

// ID implements entity.WindowRef.
func (w *Window) ID() string {
	return w.id
}

// IsValid implements entity.WindowRef.
func (w *Window) IsValid() bool {
	return !w.closed.Load()
}

// Registry holds the open windows by id.
type Registry struct {
	mu      sync.RWMutex
	windows map[string]*Window
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{windows: make(map[string]*Window)}
}

// Open creates the window id.
func (r *Registry) Open(id string) (*Window, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.windows[id]; ok {
		return nil, ErrWindowExists
	}
	w := &Window{id: id}
	r.windows[id] = w
	return w, nil
}

// Get returns the open window id.
func (r *Registry) Get(id string) (*Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.windows[id]
	return w, ok
}

// Close invalidates and forgets the window id. It reports whether it was open.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	w, ok := r.windows[id]
	delete(r.windows, id)
	r.mu.Unlock()

	if ok {
		w.closed.Store(true)
	}
	return ok
}

// IDs returns the open window ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.windows))
	for id := range r.windows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns how many windows are open.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.windows)
}
