package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"peds-aftercare/internal/ports/telemetry"
)

const defaultCapacity = 1000

// EventsRepo guarda los últimos N eventos en un buffer circular.
type EventsRepo struct {
	mu   sync.RWMutex
	buf  []telemetry.Event
	next int
	full bool
}

func NewEventsRepo(capacity int) *EventsRepo {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &EventsRepo{buf: make([]telemetry.Event, capacity)}
}

func (r *EventsRepo) Emit(_ context.Context, e telemetry.Event) error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("event id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = e
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// ListRecent devuelve los eventos más nuevos primero.
func (r *EventsRepo) ListRecent(_ context.Context, f telemetry.ListFilter) ([]telemetry.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := f.NormalizeLimit()
	op := strings.TrimSpace(f.Operation)
	subject := strings.TrimSpace(f.Subject)

	n := r.next
	if r.full {
		n = len(r.buf)
	}

	out := make([]telemetry.Event, 0, min(limit, n))
	for i := 0; i < n && len(out) < limit; i++ {
		idx := (r.next - 1 - i + len(r.buf)) % len(r.buf)
		e := r.buf[idx]
		if op != "" && e.Operation != op {
			continue
		}
		if subject != "" && !strings.EqualFold(e.Subject, subject) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
