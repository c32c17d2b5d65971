package reminders

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"peds-aftercare/internal/ports/notify"
)

// -------------------------
// Fake clock + timers
// -------------------------

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	c       *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance mueve el reloj disparando, en orden, cada timer vencido.
// Los callbacks corren sincrónicamente, sin el lock del reloj.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			if target.After(c.now) {
				c.now = target
			}
			c.mu.Unlock()
			return
		}
		next.fired = true
		if next.at.After(c.now) {
			c.now = next.at
		}
		c.mu.Unlock()

		next.f()
	}
}

// Pending cuenta timers armados que todavía pueden disparar.
func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// -------------------------
// Recording sink
// -------------------------

type recordingSink struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (s *recordingSink) Notify(_ context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, n)
	return nil
}

func (s *recordingSink) All() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Notification, len(s.got))
	copy(out, s.got)
	// las entregas son asíncronas; ordenar por disparo
	sort.Slice(out, func(i, j int) bool { return out[i].FireCount < out[j].FireCount })
	return out
}

var t0 = time.Date(2025, 12, 22, 8, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T, sink notify.Sink) (*Registry, *fakeClock) {
	t.Helper()
	clk := newFakeClock(t0)
	reg := NewRegistry(sink, nil)
	reg.now = clk.Now
	reg.afterFunc = clk.AfterFunc
	t.Cleanup(reg.Close)
	return reg, clk
}

// advance mueve el reloj y espera las entregas que haya disparado.
func advance(reg *Registry, clk *fakeClock, d time.Duration) {
	clk.Advance(d)
	reg.inflight.Wait()
}
