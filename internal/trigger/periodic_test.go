package trigger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodicFiresCountTimes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := Periodic{InitialDelay: time.Millisecond, Interval: 5 * time.Millisecond, Count: 3}

	n := 0
	for range p.Run(ctx) {
		n++
	}
	assert.Equal(t, 3, n)
}

func TestPeriodicZeroCountIsNoop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := Periodic{Interval: time.Millisecond, Count: 0}

	n := 0
	for range p.Run(ctx) {
		n++
	}
	assert.Equal(t, 0, n)
}

func TestPeriodicStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Periodic{Interval: 5 * time.Millisecond, Count: -1}

	ticks := p.Run(ctx)
	<-ticks
	<-ticks
	cancel()

	_, ok := <-ticks
	require.False(t, ok)
}

func TestSchedulerAllFiniteDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	triggers := map[string]Periodic{
		"a": {Interval: time.Millisecond, Count: 2},
		"b": {Interval: time.Millisecond, Count: 1},
	}

	sched := NewScheduler(triggers)
	sched.Start(ctx, triggers)

	received := 0
	for range sched.Events {
		received++
	}

	assert.Equal(t, 3, received)
	select {
	case <-sched.AllFiniteDone():
	default:
		t.Fatal("expected AllFiniteDone to be closed")
	}
}
