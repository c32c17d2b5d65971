package risk

import (
	"context"
	"time"

	"peds-aftercare/internal/platform/logger"
	"peds-aftercare/internal/ports/telemetry"

	"github.com/google/uuid"
)

// Service envuelve Evaluate y emite telemetría; el resultado nunca depende del sink.
type Service struct {
	events telemetry.Sink
	log    logger.Logger
	now    func() time.Time
}

func NewService(events telemetry.Sink, log logger.Logger) *Service {
	if events == nil {
		events = telemetry.Nop()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		events: events,
		log:    log,
		now:    time.Now,
	}
}

func (s *Service) Evaluate(ctx context.Context, snap SymptomSnapshot) Assessment {
	a := Evaluate(snap)

	err := s.events.Emit(ctx, telemetry.Event{
		ID:        uuid.NewString(),
		Operation: "risk.evaluate",
		Outcome:   telemetry.Outcome(a.Tier.String()),
		Timestamp: s.now(),
	})
	if err != nil {
		s.log.Warn("telemetry emit failed", map[string]any{"operation": "risk.evaluate", "error": err})
	}

	if a.Alert {
		s.log.Warn("high risk symptoms reported", map[string]any{"reasons": a.Reasons})
	}
	return a
}
