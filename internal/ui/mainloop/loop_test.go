package mainloop

import (
	"context"
	"testing"
	"time")

func runLoop(t *testing.T, l *Loop) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})
	return cancel
}

func TestLoopRunsTasksInPostOrder(t *testing.T) {
	l := NewLoop()
	got := make(chan int, 3)

	for i := 1; i <= 3; i++ {
		v := i
		l.Post(func() { got <- v })
	}
	runLoop(t, l)

	for want := 1; want <= 3; want++ {
		select {
		case v := <-got:
			if v != want {
				t.Fatalf("expected task %d, got %d", want, v)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for task %d", want)
		}
	}
}

func TestLoopTaskCanPostFromLoop(t *testing.T) {
	l := NewLoop()
	done := make(chan struct{})

	l.Post(func() {
		l.Post(func() { close(done) })
	})
	runLoop(t, l)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("nested post never ran")
	}
}

func TestLoopCoalescesBurstIntoLatest(t *testing.T) {
	l := NewLoop()
	got := make(chan int, 5)

	for i := 1; i <= 5; i++ {
		v := i
		l.PostCoalesced("surface-resumed", func() { got <- v })
	}
	l.Post(func() { close(got) })
	runLoop(t, l)

	var values []int
	for v := range got {
		values = append(values, v)
	}
	if len(values) != 1 || values[0] != 5 {
		t.Fatalf("expected only the latest coalesced task to run, got %v", values)
	}
}

func TestLoopRejectsPostsAfterStop(t *testing.T) {
	l := NewLoop()
	l.Stop()

	if l.Post(func() {}) {
		t.Fatalf("expected Post to fail after Stop")
	}

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("expected clean exit after Stop, got %v", err)
	}
}

func TestLoopPostNilIsIgnored(t *testing.T) {
	l := NewLoop()
	if l.Post(nil) {
		t.Fatalf("expected nil task to be rejected")
	}
	l.PostCoalesced("", func() {})
	l.PostCoalesced("key", nil)

	if _, ok := l.next(); ok {
		t.Fatalf("expected no queued tasks")
	}
}

func TestLoopDrainRunsNestedPosts(t *testing.T) {
	l := NewLoop()
	var order []int

	l.Post(func() {
		order = append(order, 1)
		l.Post(func() { order = append(order, 3) })
	})
	l.Post(func() { order = append(order, 2) })

	if ran := l.Drain(); ran != 3 {
		t.Fatalf("expected 3 tasks to run, got %d", ran)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("unexpected order %v", order)
	}
	if ran := l.Drain(); ran != 0 {
		t.Fatalf("expected empty loop, got %d tasks", ran)
	}
}

func TestLoopStopsWhenWakeSignalWasAlreadyTaken(t *testing.T) {
	l := NewLoop()
	ran := false
	if !l.Post(func() { ran = true }) {
		t.Fatalf("Post failed before Stop")
	}
	l.Stop()
	// The pending wake-up is consumed while a task is still queued.
	<-l.wake

	go func() { _ = l.Run(context.Background()) }()

	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if !ran {
		t.Fatalf("queued task did not run before Run returned")
	}
}

func TestLoopStopWakesIdleRun(t *testing.T) {
	l := NewLoop()
	go func() { _ = l.Run(context.Background()) }()

	l.Post(func() {})
	l.Stop()
	l.Stop()

	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
