// Package trigger implements the cooperative, single-process periodic
// trigger scheduler from spec.md §4.4, in the same context-driven
// select/timer style the teacher's process manager uses for its health
// check watchdog.
package trigger

import (
	"context"
	"time"
)

// Periodic fires on Events at a fixed cadence relative to program start
// (not wall-clock cron), per spec.md §4.4: wait InitialDelay, then tick
// every Interval. Count bounds the number of events; Count == 0 makes the
// trigger a permanent no-op, and a negative Count runs forever.
type Periodic struct {
	InitialDelay time.Duration
	Interval     time.Duration
	Count        int
}

// Run blocks, sending one value on the returned channel per tick, until
// Count is exhausted or ctx is cancelled. On cancellation, Run returns
// without completing any additional sends, matching spec.md §4.4's "on
// shutdown signal ... no new events fire."
func (p Periodic) Run(ctx context.Context) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		if p.Count == 0 {
			return
		}

		if p.InitialDelay > 0 {
			timer := time.NewTimer(p.InitialDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		fired := 0
		if !p.sendOrStop(ctx, out) {
			return
		}
		fired++
		if p.Count > 0 && fired >= p.Count {
			return
		}

		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !p.sendOrStop(ctx, out) {
					return
				}
				fired++
				if p.Count > 0 && fired >= p.Count {
					return
				}
			}
		}
	}()

	return out
}

func (p Periodic) sendOrStop(ctx context.Context, out chan<- struct{}) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case out <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}
