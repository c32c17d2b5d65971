package reminders

import (
	"context"
	"fmt"

	"peds-aftercare/internal/platform/logger"
	"peds-aftercare/internal/ports/notify"
)

// armLocked programa un solo wake-up en next-due (0 si ya venció).
// Requiere r.mu tomado.
func (r *Registry) armLocked(e *entry) {
	d := e.schedule.NextDue.Sub(r.now())
	if d < 0 {
		d = 0
	}
	e.gen++
	gen := e.gen
	e.timer = r.afterFunc(d, func() { r.fire(e, gen) })
}

// fire corre en la goroutine del timer. Si la entry ya no es la instalada
// (cancelada o reemplazada) o el timer ya no es el vigente (RecordFire
// re-armó mientras este callback esperaba el lock) no hace nada.
func (r *Registry) fire(e *entry, gen uint64) {
	r.mu.Lock()

	key := e.schedule.Key()
	if cur, ok := r.active[key]; !ok || cur != e || e.gen != gen {
		r.mu.Unlock()
		return
	}

	res := r.recordFireLocked(key, e)
	if res.Continue {
		r.armLocked(e)
	}

	hook := r.onFire
	r.inflight.Add(1)
	r.mu.Unlock()

	go r.deliver(res, hook)
}

// deliver entrega la notificación sin bloquear al dispatcher. Errores y
// panics del sink se loguean; el timer ya quedó re-armado.
func (r *Registry) deliver(res FireResult, hook func(FireResult)) {
	defer r.inflight.Done()

	log := r.log.With(map[string]any{
		"medication": res.Schedule.Medication,
		"fire_count": res.Schedule.FireCount,
	})

	if r.sink != nil {
		n := notify.Notification{
			Medication: res.Schedule.Medication,
			FireCount:  res.Schedule.FireCount,
			FiredAt:    res.FiredAt,
			Final:      !res.Continue,
		}
		if res.Continue {
			n.NextDue = res.Schedule.NextDue
		}

		safely(log, "reminder notification", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), r.deliveryTimeout)
			defer cancel()
			return r.sink.Notify(ctx, n)
		})
	}

	if !res.Continue {
		log.Info("medication schedule completed", nil)
	}

	if hook != nil {
		safely(log, "reminder fire hook", func() error {
			hook(res)
			return nil
		})
	}
}

func safely(log logger.Logger, what string, fn func() error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error(what+" panicked", map[string]any{"panic": fmt.Sprint(rec)})
		}
	}()
	if err := fn(); err != nil {
		log.Error(what+" failed", map[string]any{"error": err})
	}
}
