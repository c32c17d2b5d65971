package logsink

import (
	"context"
	"time"

	"peds-aftercare/internal/platform/logger"
	"peds-aftercare/internal/ports/telemetry"
)

// Sink escribe cada evento como una línea de log estructurado.
type Sink struct {
	log logger.Logger
}

func New(log logger.Logger) *Sink {
	if log == nil {
		log = logger.Nop()
	}
	return &Sink{log: log.With(map[string]any{"component": "telemetry"})}
}

func (s *Sink) Emit(_ context.Context, e telemetry.Event) error {
	s.log.Info("care event", map[string]any{
		"event_id":  e.ID,
		"operation": e.Operation,
		"outcome":   string(e.Outcome),
		"subject":   e.Subject,
		"at":        e.Timestamp.UTC().Format(time.RFC3339),
	})
	return nil
}
