package framequeue

import (
	"testing"
	"time"
)

func TestQueue_Tick(t *testing.T) {
	q := New()
	var got []time.Duration
	q.RequestFrame(func(now time.Duration) { got = append(got, now) })
	q.RequestFrame(func(now time.Duration) {
		got = append(got, now)
		q.RequestFrame(func(now time.Duration) { got = append(got, now) })
	})

	if q.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", q.Pending())
	}
	if n := q.Tick(16 * time.Millisecond); n != 2 {
		t.Errorf("Tick() = %d, want 2", n)
	}
	if q.Pending() != 1 {
		t.Errorf("callback requested while ticking should wait for the next tick")
	}
	q.Tick(32 * time.Millisecond)

	if len(got) != 3 || got[2] != 32*time.Millisecond {
		t.Errorf("callbacks ran at %v", got)
	}
	if q.Requests() != 3 || q.Ticks() != 2 {
		t.Errorf("Requests() = %d, Ticks() = %d", q.Requests(), q.Ticks())
	}
	if q.Tick(48*time.Millisecond) != 0 {
		t.Error("empty tick should run nothing")
	}
}
