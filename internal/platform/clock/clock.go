package clock

import (
	"sync"
	"time"
)

// Clock abstracts time to keep the timer deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Handle cancels a periodic task started by a Ticker.
type Handle interface {
	Stop()
}

// Ticker starts a cancellable periodic task that invokes fn once per interval.
// Implementations never run fn concurrently with itself. A callback already in
// flight when Stop is called may still complete.
type Ticker interface {
	Every(interval time.Duration, fn func()) Handle
}

type SystemTicker struct{}

func (SystemTicker) Every(interval time.Duration, fn func()) Handle {
	h := &systemHandle{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-h.done:
				return
			case <-h.ticker.C:
				select {
				case <-h.done:
					return
				default:
				}
				fn()
			}
		}
	}()
	return h
}

type systemHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// Stop is safe to call more than once. It does not wait for an in-flight
// callback, so callers holding a lock that fn also takes must not deadlock.
func (h *systemHandle) Stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}
