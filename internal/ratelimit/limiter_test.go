package ratelimit

import (
	"testing"
	"time"
)

// fakeClock lets tests slide the window deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(max int, window time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	l := New(max, window)
	l.now = clock.now
	return l, clock
}

func TestAllowUpToMax(t *testing.T) {
	l, _ := newTestLimiter(10, time.Minute)
	for i := 0; i < 10; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("request 11 should be rejected")
	}
}

func TestRejectionDoesNotExtendWindow(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)
	l.Allow("c")
	l.Allow("c")

	// Hammering while rejected must not push the recovery point out.
	for i := 0; i < 5; i++ {
		clock.advance(10 * time.Second)
		if l.Allow("c") {
			t.Fatalf("should still be rejected at +%ds", (i+1)*10)
		}
	}
	clock.advance(11 * time.Second) // first admit is now 61s old
	if !l.Allow("c") {
		t.Fatal("should be allowed once the oldest timestamp ages out")
	}
}

func TestWindowSlides(t *testing.T) {
	l, clock := newTestLimiter(3, time.Minute)
	l.Allow("c")
	clock.advance(30 * time.Second)
	l.Allow("c")
	l.Allow("c")
	if l.Allow("c") {
		t.Fatal("4th request inside window should be rejected")
	}

	clock.advance(31 * time.Second) // only the first admit has aged out
	if !l.Allow("c") {
		t.Fatal("one slot should have opened")
	}
	if l.Allow("c") {
		t.Fatal("window should be full again")
	}
}

func TestClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	if !l.Allow("a") {
		t.Fatal("client a should be allowed")
	}
	if !l.Allow("b") {
		t.Fatal("client b should not be affected by client a")
	}
	if l.Allow("a") {
		t.Fatal("client a should be limited")
	}
}

func TestSweepDropsIdleIdentities(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)
	l.Allow("idle")
	l.Allow("busy")

	clock.advance(2 * time.Minute)
	l.Allow("busy")
	l.Sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.clients["idle"]; ok {
		t.Error("idle identity should have been swept")
	}
	if _, ok := l.clients["busy"]; !ok {
		t.Error("busy identity should survive the sweep")
	}
}

func TestDefaults(t *testing.T) {
	l := New(0, 0)
	if l.max != DefaultMaxRequests || l.window != DefaultWindow {
		t.Errorf("got max=%d window=%v, want defaults", l.max, l.window)
	}
}
