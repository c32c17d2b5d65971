package notify

import (
	"context"
	"errors"
	"time"
)

// Notification es un disparo de recordatorio entregado al exterior.
type Notification struct {
	Medication string
	FireCount  int
	FiredAt    time.Time

	// NextDue es cero cuando el schedule terminó con este disparo (Final).
	NextDue time.Time
	Final   bool
}

// Sink recibe recordatorios. El dispatcher lo llama en su propia goroutine;
// un error o panic se loguea y no afecta el re-armado.
type Sink interface {
	Notify(ctx context.Context, n Notification) error
}

// SinkFunc adapta una función a Sink.
type SinkFunc func(ctx context.Context, n Notification) error

func (f SinkFunc) Notify(ctx context.Context, n Notification) error { return f(ctx, n) }

// Fanout entrega a todos los sinks y junta los errores.
type Fanout []Sink

func (f Fanout) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
