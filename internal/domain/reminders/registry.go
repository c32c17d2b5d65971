package reminders

import (
	"sort"
	"strings"
	"sync"
	"time"

	"peds-aftercare/internal/platform/logger"
	"peds-aftercare/internal/ports/notify"

	"github.com/google/uuid"
)

// stopper es lo único que el registry necesita de un timer.
type stopper interface {
	Stop() bool
}

type entry struct {
	schedule MedicationSchedule
	timer    stopper
	// gen identifica el timer vigente; callbacks de timers anteriores se ignoran
	gen uint64
}

// Registry es dueño de todos los schedules activos y de su timer pendiente.
// Un solo mutex serializa create/replace/cancel/fire; ListActive usa RLock.
// Invariante: cada entry del mapa tiene exactamente un timer armado.
type Registry struct {
	mu     sync.RWMutex
	active map[string]*entry

	sink   notify.Sink
	log    logger.Logger
	onFire func(FireResult)

	// notificaciones en vuelo (Close las espera)
	inflight sync.WaitGroup

	now             func() time.Time
	afterFunc       func(d time.Duration, f func()) stopper
	deliveryTimeout time.Duration
}

func NewRegistry(sink notify.Sink, log logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		active: make(map[string]*entry),
		sink:   sink,
		log:    log,
		now:    time.Now,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		deliveryTimeout: 10 * time.Second,
	}
}

// OnFire registra un callback que corre después de cada disparo contabilizado,
// fuera del lock. Configurar antes de crear schedules.
func (r *Registry) OnFire(fn func(FireResult)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onFire = fn
}

// CreateOrReplace instala un schedule nuevo con next-due = now + interval.
// Si ya existía uno con el mismo nombre, su timer se detiene antes.
func (r *Registry) CreateOrReplace(d Descriptor) (MedicationSchedule, bool, error) {
	if d.Interval <= 0 || d.Interval > MaxInterval ||
		d.DurationDays < 0 || d.DurationDays > MaxDurationDays ||
		strings.TrimSpace(d.Medication) == "" {
		return MedicationSchedule{}, false, ErrInvalidSchedule
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s := MedicationSchedule{
		ID:           uuid.NewString(),
		Medication:   DisplayName(d.Medication),
		Interval:     d.Interval,
		DurationDays: d.DurationDays,
		CreatedAt:    now,
		NextDue:      now.Add(d.Interval),
	}

	key := s.Key()
	old, replaced := r.active[key]
	if replaced {
		old.timer.Stop()
	}

	e := &entry{schedule: s}
	r.active[key] = e
	r.armLocked(e)

	return s, replaced, nil
}

// Cancel elimina el schedule (match case-insensitive). Una vez que retorna,
// su timer ya no puede disparar.
func (r *Registry) Cancel(name string) (MedicationSchedule, error) {
	key := NormalizeName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.active[key]
	if !ok {
		return MedicationSchedule{}, notFound(name)
	}
	e.timer.Stop()
	delete(r.active, key)
	return e.schedule, nil
}

// CancelAll detiene todo y devuelve cuántos schedules había.
func (r *Registry) CancelAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.active)
	for key, e := range r.active {
		e.timer.Stop()
		delete(r.active, key)
	}
	return n
}

func (r *Registry) Get(name string) (MedicationSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.active[NormalizeName(name)]
	if !ok {
		return MedicationSchedule{}, notFound(name)
	}
	return e.schedule, nil
}

// ListActive devuelve una copia ordenada por next-due (asc), luego por nombre.
func (r *Registry) ListActive() []MedicationSchedule {
	r.mu.RLock()
	out := make([]MedicationSchedule, 0, len(r.active))
	for _, e := range r.active {
		out = append(out, e.schedule)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextDue.Equal(out[j].NextDue) {
			return out[i].NextDue.Before(out[j].NextDue)
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}

// RecordFire contabiliza un disparo: fire count +1, next-due + interval, y
// retira el schedule si su duración ya pasó. Re-arma el timer si continúa.
// El dispatcher usa el mismo camino internamente.
func (r *Registry) RecordFire(name string) (FireResult, error) {
	key := NormalizeName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.active[key]
	if !ok {
		return FireResult{}, notFound(name)
	}
	e.timer.Stop()

	res := r.recordFireLocked(key, e)
	if res.Continue {
		r.armLocked(e)
	}
	return res, nil
}

// Close cancela todo y espera a que terminen las notificaciones en vuelo.
func (r *Registry) Close() {
	r.CancelAll()
	r.inflight.Wait()
}

func (r *Registry) recordFireLocked(key string, e *entry) FireResult {
	now := r.now()

	e.schedule.FireCount++
	e.schedule.LastFiredAt = now
	e.schedule.NextDue = e.schedule.NextDue.Add(e.schedule.Interval)

	res := FireResult{FiredAt: now, Continue: true}

	if e.schedule.Bounded() && !now.Before(e.schedule.EndsAt()) {
		res.Continue = false
		delete(r.active, key)
	}

	res.Schedule = e.schedule
	return res
}
