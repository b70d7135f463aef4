package ticker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gymdesk/internal/domain/clock"
)

// DefaultInterval is the refresh cadence for live class boards.
const DefaultInterval = time.Second

// Ticker reads a Clock on a fixed interval and fans each instant out to subscribers.
// One Ticker serves the whole process.
type Ticker struct {
	clock    clock.Clock
	interval time.Duration

	mu     sync.Mutex
	subs   map[int]chan time.Time
	nextID int
	closed bool
}

// New creates a Ticker. A non-positive interval means DefaultInterval.
func New(c clock.Clock, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{clock: c, interval: interval, subs: make(map[int]chan time.Time)}
}

// Interval returns the configured tick interval.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Subscribe registers a new listener.
// POST: The channel receives instants until unsubscribe is called or Run returns,
// after which it is closed. Unsubscribe is idempotent.
func (t *Ticker) Subscribe() (<-chan time.Time, func()) {
	ch := make(chan time.Time, 1)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		close(ch)
		return ch, func() {}
	}
	id := t.nextID
	t.nextID++
	t.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if c, ok := t.subs[id]; ok {
				delete(t.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (t *Ticker) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Publish sends the clock's current instant to every subscriber.
// A subscriber whose buffer is full misses this tick; the ticker never blocks.
func (t *Ticker) Publish() time.Time {
	now := t.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ch := range t.subs {
		select {
		case ch <- now:
		default:
		}
	}
	return now
}

// Run publishes once immediately and then every interval until ctx is cancelled.
// PRE: Run is called at most once
// POST: All subscriber channels are closed and later Subscribe calls get a closed channel
func (t *Ticker) Run(ctx context.Context) {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	slog.Info("ticker_started", "interval", t.interval.String())
	t.Publish()
	for {
		select {
		case <-tk.C:
			t.Publish()
		case <-ctx.Done():
			t.shutdown()
			slog.Info("ticker_stopped")
			return
		}
	}
}

func (t *Ticker) shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for id, ch := range t.subs {
		delete(t.subs, id)
		close(ch)
	}
}
