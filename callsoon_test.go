package promptcore

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerCoalescesBurstIntoOneRun(t *testing.T) {
	var runs int32
	s := NewScheduler(20*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	for i := 0; i < 10; i++ {
		s.CallSoon()
	}

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Fatalf("runs = %d, want 1 (burst should coalesce)", got)
	}
}

func TestSchedulerRunsAgainAfterDebounceWindow(t *testing.T) {
	var runs int32
	s := NewScheduler(5*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	s.CallSoon()
	time.Sleep(40 * time.Millisecond)
	s.CallSoon()
	time.Sleep(40 * time.Millisecond)

	if got := atomic.LoadInt32(&runs); got != 2 {
		t.Fatalf("runs = %d, want 2 (two separate requests outside the debounce window)", got)
	}
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	var runs int32
	s := NewScheduler(0, func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
