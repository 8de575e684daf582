package promptcore

import (
	"context"
	"time"
)

// Scheduler re-posts callbacks (typically "please re-render") from
// arbitrary goroutines onto a single dedicated loop goroutine, coalescing
// a burst of calls within Debounce into one execution — grounded in the
// teacher's handleRenderRequests channel-drain loop, generalized from a
// render-only queue into a named callback queue plus a debounce window
// (spec §5).
type Scheduler struct {
	pending  chan struct{}
	debounce time.Duration
	fn       func(ctx context.Context)
}

// NewScheduler returns a Scheduler that invokes fn on its loop goroutine,
// coalescing requests that arrive within debounce of each other into a
// single call. A zero debounce disables the debounce window only: calls
// that arrive while a request is still pending are merged into it (see
// CallSoon), so a burst can still produce a single run.
func NewScheduler(debounce time.Duration, fn func(ctx context.Context)) *Scheduler {
	return &Scheduler{
		pending:  make(chan struct{}, 1),
		debounce: debounce,
		fn:       fn,
	}
}

// CallSoon requests that fn run soon. Safe to call from any goroutine,
// any number of times; calls that arrive while a request is already
// pending (not yet drained by Run) are coalesced into that single
// pending run (spec §5).
func (s *Scheduler) CallSoon() {
	select {
	case s.pending <- struct{}{}:
	default:
	}
}

// Run drives the scheduler's loop until ctx is cancelled. The ambient ctx
// passed here is captured once and handed to every fn invocation, so a
// callback scheduled from a short-lived goroutine still observes the
// loop's own, longer-lived cancellation — not whatever context (if any)
// happened to be active on the calling goroutine (spec §5's "ambient
// context capture").
func (s *Scheduler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.pending:
		}

		if s.debounce > 0 {
			timer := time.NewTimer(s.debounce)
			s.drainDuring(ctx, timer.C)
			timer.Stop()
		}

		if ctx.Err() != nil {
			return
		}
		s.fn(ctx)
	}
}

// drainDuring absorbs any further CallSoon signals that arrive before the
// debounce timer fires, so a burst of requests still produces one run.
func (s *Scheduler) drainDuring(ctx context.Context, done <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-s.pending:
		}
	}
}
