package clock_test

import (
	"sync/atomic"
	"testing"
	"time"

	"tasktimer/internal/platform/clock"
)

func TestSystemTickerStopsFiring(t *testing.T) {
	t.Parallel()
	var count atomic.Int32
	handle := clock.SystemTicker{}.Every(5*time.Millisecond, func() { count.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for count.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("ticker did not fire, count=%d", count.Load())
		}
		time.Sleep(time.Millisecond)
	}
	handle.Stop()
	handle.Stop()

	// one callback may already be in flight when Stop returns
	time.Sleep(20 * time.Millisecond)
	after := count.Load()
	time.Sleep(50 * time.Millisecond)
	if count.Load() != after {
		t.Fatalf("ticker kept firing after stop: %d -> %d", after, count.Load())
	}
}

func TestManualTickerAdvancesClockAndHonoursStop(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	clk := clock.NewManualClock(start)
	ticker := clock.NewManualTicker(clk)

	fired := 0
	handle := ticker.Every(time.Second, func() { fired++ })
	ticker.Advance(3)
	if fired != 3 {
		t.Fatalf("expected 3 ticks, got %d", fired)
	}
	if got := clk.Now().Sub(start); got != 3*time.Second {
		t.Fatalf("expected clock to move 3s, moved %s", got)
	}
	if ticker.Active() != 1 || ticker.Started() != 1 {
		t.Fatalf("expected one active handle, got active=%d started=%d", ticker.Active(), ticker.Started())
	}

	handle.Stop()
	ticker.Advance(2)
	if fired != 3 {
		t.Fatalf("stopped handle fired: %d", fired)
	}
	if ticker.Active() != 0 {
		t.Fatalf("expected no active handles, got %d", ticker.Active())
	}
}
