package app

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdownStopsWhenTickDeclines(t *testing.T) {
	ticks := make(chan time.Time)
	c := NewCountdown(time.Second, func(time.Duration) (<-chan time.Time, func()) { return ticks, func() {} })

	var calls atomic.Int32
	c.Start(func() bool { return calls.Add(1) < 2 })
	ticks <- time.Now()
	ticks <- time.Now()
	c.Wait()

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 ticks, got %d", got)
	}
}

func TestCountdownStop(t *testing.T) {
	stopped := make(chan struct{})
	c := NewCountdown(time.Second, func(time.Duration) (<-chan time.Time, func()) {
		return make(chan time.Time), func() { close(stopped) }
	})
	c.Start(func() bool { return true })
	c.Stop()
	c.Wait()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatalf("expected ticker released after stop")
	}
	c.Stop()
}

func TestStatusTrackerCounts(t *testing.T) {
	tracker := NewStatusTracker(4)
	tracker.SetStatus(1, "answered")
	tracker.SetStatus(9, "answered")

	counts := tracker.Counts()
	if counts["answered"] != 1 || counts["not_answered"] != 1 || counts["not_visited"] != 2 || counts["marked_for_review"] != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestAnswerStore(t *testing.T) {
	store := NewAnswerStore()
	store.Set(3, "c")
	store.Set(3, "d")
	if key, ok := store.Get(3); !ok || key != "d" {
		t.Fatalf("expected overwritten answer d, got %q %v", key, ok)
	}
	snap := store.Snapshot()
	store.Clear(3)
	if _, ok := store.Get(3); ok || store.Len() != 0 {
		t.Fatalf("expected answer cleared")
	}
	if snap[3] != "d" {
		t.Fatalf("snapshot must be independent of the store")
	}
}
