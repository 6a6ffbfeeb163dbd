package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultMaxRequests = 10
	DefaultWindow      = 60 * time.Second
)

// Limiter is a sliding-window admission controller. Each client identity
// keeps the timestamps of its admitted requests inside the trailing window;
// the window boundary moves with every check, so the count always reflects
// exactly the last windowSeconds at the instant of the call.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	clients map[string][]time.Time

	now func() time.Time
}

func New(max int, window time.Duration) *Limiter {
	if max <= 0 {
		max = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		max:     max,
		window:  window,
		clients: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow reports whether clientID may proceed. Timestamps older than the
// window are discarded first; a rejected request is not recorded, so it does
// not extend the client's penalty.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	kept := trim(l.clients[clientID], now.Add(-l.window))

	if len(kept) >= l.max {
		l.clients[clientID] = kept
		return false
	}

	l.clients[clientID] = append(kept, now)
	return true
}

// Sweep drops identities with no timestamps left in the window, keeping the
// table bounded by recently active clients. The admission path never needs
// it; the app runs it on a ticker.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for id, stamps := range l.clients {
		if kept := trim(stamps, cutoff); len(kept) == 0 {
			delete(l.clients, id)
		} else {
			l.clients[id] = kept
		}
	}
}

// RunSweeper sweeps every interval until ctx is done.
func (l *Limiter) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep()
		}
	}
}

func trim(stamps []time.Time, cutoff time.Time) []time.Time {
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}
