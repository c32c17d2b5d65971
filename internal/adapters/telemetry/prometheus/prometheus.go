package prometheus

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"peds-aftercare/internal/ports/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sink cuenta eventos por operación y resultado.
// Usa su propio registry para no chocar con el global en tests.
type Sink struct {
	reg    *prometheus.Registry
	events *prometheus.CounterVec
}

func New(namespace string) (*Sink, error) {
	if strings.TrimSpace(namespace) == "" {
		namespace = "aftercare"
	}

	reg := prometheus.NewRegistry()
	s := &Sink{
		reg: reg,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "care_events_total",
			Help:      "Reminder and risk events by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}

	cs := []prometheus.Collector{
		s.events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return s, nil
}

func (s *Sink) Emit(_ context.Context, e telemetry.Event) error {
	s.events.WithLabelValues(e.Operation, string(e.Outcome)).Inc()
	return nil
}

// TrackActive expone un gauge leído en cada scrape (p.ej. recordatorios activos).
func (s *Sink) TrackActive(namespace, name, help string, fn func() float64) error {
	if strings.TrimSpace(namespace) == "" {
		namespace = "aftercare"
	}
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn)
	if err := s.reg.Register(g); err != nil {
		return fmt.Errorf("register gauge %s: %w", name, err)
	}
	return nil
}

// Handler sirve /metrics.
func (s *Sink) Handler() http.Handler {
	return promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{Registry: s.reg})
}
