// Package mainloop provides the single UI-event thread the permission queue runs on.
package mainloop

import (
	"context"
	"sync"
)

// PostFunc schedules fn to run on the main loop.
type PostFunc func(fn func())

// Loop runs posted tasks one at a time on the goroutine that called Run.
// Posting never blocks, so tasks may post further tasks.
type Loop struct {
	mu        sync.Mutex
	tasks     []func()
	coalesced map[string]func()
	wake      chan struct{}
	quit      chan struct{} // closed by the first Stop
	stopped   bool
	done      chan struct{}
}

// NewLoop creates an idle loop. Call Run to start draining it.
func NewLoop() *Loop {
	return &Loop{
		coalesced: make(map[string]func()),
		wake:      make(chan struct{}, 1),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Post queues fn. It returns false once the loop is stopped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	l.signal()
	return true
}

// PostCoalesced merges bursts of same-key tasks: only the latest fn posted
// before the loop gets to the key runs.
func (l *Loop) PostCoalesced(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	_, pending := l.coalesced[key]
	l.coalesced[key] = fn
	if !pending {
		l.tasks = append(l.tasks, func() { l.runCoalesced(key) })
	}
	l.mu.Unlock()

	l.signal()
}

func (l *Loop) runCoalesced(key string) {
	l.mu.Lock()
	fn := l.coalesced[key]
	delete(l.coalesced, key)
	l.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Poster returns l.Post as a PostFunc.
func (l *Loop) Poster() PostFunc {
	return func(fn func()) { l.Post(fn) }
}

// Run drains tasks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	for {
		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			fn()
		}

		if l.finished() {
			return nil
		}

		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.wake:
		case <-l.quit:
		}
	}
}

// finished reports a stopped loop with nothing left to run. Stopped loops
// accept no posts, so the answer cannot flip back.
func (l *Loop) finished() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped && len(l.tasks) == 0
}

// Drain runs queued tasks on the calling goroutine until none are left,
// including tasks posted while draining. It returns how many ran.
// Headless runs use it instead of Run; never call both.
func (l *Loop) Drain() int {
	ran := 0
	for {
		fn, ok := l.next()
		if !ok {
			return ran
		}
		fn()
		ran++
	}
}

// Stop makes further posts fail. Tasks already queued still run.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	l.coalesced = map[string]func(){}
	close(l.quit)
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.tasks) == 0 {
		return nil, false
	}
	fn := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return fn, true
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
