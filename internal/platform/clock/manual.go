package clock

import (
	"sync"
	"time"
)

// ManualTicker is a virtual ticker for tests and scripted runs. Callbacks only
// fire when Advance is called. When bound to a ManualClock, each round moves
// the clock forward by one second before the callbacks run.
type ManualTicker struct {
	mu      sync.Mutex
	next    int
	active  map[int]func()
	started int
	clock   *ManualClock
}

func NewManualTicker(clk *ManualClock) *ManualTicker {
	return &ManualTicker{active: map[int]func(){}, clock: clk}
}

func (t *ManualTicker) Every(_ time.Duration, fn func()) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.started++
	id := t.next
	t.active[id] = fn
	return manualHandle{ticker: t, id: id}
}

// Advance runs n rounds. Each round fires every active callback once.
func (t *ManualTicker) Advance(n int) {
	for i := 0; i < n; i++ {
		if t.clock != nil {
			t.clock.Add(time.Second)
		}
		for _, fn := range t.snapshot() {
			fn()
		}
	}
}

// Active reports how many handles have not been stopped.
func (t *ManualTicker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

// Started reports how many handles were created in total.
func (t *ManualTicker) Started() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

func (t *ManualTicker) snapshot() []func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fns := make([]func(), 0, len(t.active))
	for id := 1; id <= t.next; id++ {
		if fn, ok := t.active[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

type manualHandle struct {
	ticker *ManualTicker
	id     int
}

func (h manualHandle) Stop() {
	h.ticker.mu.Lock()
	defer h.ticker.mu.Unlock()
	delete(h.ticker.active, h.id)
}

// ManualClock is a settable Clock.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
