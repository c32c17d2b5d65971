package telemetry

import (
	"context"
	"errors"
	"time"
)

type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeReplaced Outcome = "replaced"
	OutcomeRetired  Outcome = "retired"
	OutcomeNotFound Outcome = "not_found"
	OutcomeInvalid  Outcome = "invalid"
)

// Event es el registro plano que emite el core tras cada evaluación de
// riesgo y cada mutación de schedules.
type Event struct {
	ID        string
	Operation string
	Outcome   Outcome
	Subject   string // medicamento, o vacío
	Timestamp time.Time
}

// Sink es solo informativo: el core ignora sus errores (los loguea).
type Sink interface {
	Emit(ctx context.Context, e Event) error
}

type nop struct{}

func (nop) Emit(context.Context, Event) error { return nil }

// Nop descarta eventos.
func Nop() Sink { return nop{} }

// Multi reenvía a todos los sinks; un sink caído no impide a los demás.
type Multi []Sink

func (m Multi) Emit(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Emit(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ListFilter filtra la consulta de eventos recientes.
type ListFilter struct {
	Operation string // vacío = todas
	Subject   string // vacío = todos; case-insensitive
	Limit     int    // <=0 => default 50, máx 500
}

// Store es un Sink que además permite leer el historial (auditoría).
type Store interface {
	Sink
	ListRecent(ctx context.Context, f ListFilter) ([]Event, error)
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// NormalizeLimit aplica default y tope.
func (f ListFilter) NormalizeLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}
