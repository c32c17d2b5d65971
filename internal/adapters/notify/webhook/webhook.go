package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"peds-aftercare/internal/platform/breaker"
	"peds-aftercare/internal/platform/httpclient"
	"peds-aftercare/internal/platform/logger"
	"peds-aftercare/internal/ports/notify"

	"github.com/sony/gobreaker"
)

var ErrNotConfigured = errors.New("webhook notifier not configured")

type Config struct {
	URL     string
	Timeout time.Duration

	// Headers extra (p.ej. Authorization del receptor).
	Headers map[string]string
}

// Notifier hace POST JSON de cada recordatorio a una URL externa.
// Detrás de un circuit breaker: si el receptor está caído no se acumulan timeouts.
type Notifier struct {
	url     string
	headers map[string]string
	client  *httpclient.Client
	cb      *gobreaker.CircuitBreaker
}

type payload struct {
	Event      string     `json:"event"`
	Medication string     `json:"medication"`
	FireCount  int        `json:"fire_count"`
	FiredAt    time.Time  `json:"fired_at"`
	NextDue    *time.Time `json:"next_due,omitempty"`
	Final      bool       `json:"final"`
	Message    string     `json:"message"`
}

func New(cfg Config, log logger.Logger) *Notifier {
	return NewWithClient(cfg, httpclient.New(cfg.Timeout), log)
}

func NewWithClient(cfg Config, client *httpclient.Client, log logger.Logger) *Notifier {
	bc := breaker.DefaultConfig("notify-webhook")
	// 4xx es problema del payload/credenciales, no del receptor
	bc.IsSuccessful = func(err error) bool {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			return !he.Retryable()
		}
		return err == nil
	}

	return &Notifier{
		url:     strings.TrimSpace(cfg.URL),
		headers: cfg.Headers,
		client:  client,
		cb:      breaker.New(bc, log),
	}
}

func (n *Notifier) Notify(ctx context.Context, msg notify.Notification) error {
	if n == nil || n.url == "" {
		return ErrNotConfigured
	}

	p := payload{
		Event:      "medication.reminder",
		Medication: msg.Medication,
		FireCount:  msg.FireCount,
		FiredAt:    msg.FiredAt.UTC(),
		Final:      msg.Final,
		Message:    fmt.Sprintf("Time to take %s!", msg.Medication),
	}
	if !msg.NextDue.IsZero() {
		next := msg.NextDue.UTC()
		p.NextDue = &next
	}

	_, err := n.cb.Execute(func() (any, error) {
		return nil, n.client.PostJSON(ctx, n.url, n.headers, p)
	})
	if err != nil {
		return fmt.Errorf("webhook notify %s: %w", msg.Medication, err)
	}
	return nil
}
