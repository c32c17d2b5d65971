package breaker

import (
	"time"

	"peds-aftercare/internal/platform/logger"

	"github.com/sony/gobreaker"
)

// Config del circuit breaker para adapters salientes.
type Config struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration

	FailureThreshold float64
	MinRequests      uint32

	// IsSuccessful opcional: permite no contar como falla errores del cliente (4xx).
	IsSuccessful func(err error) bool
}

func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

// New arma un *gobreaker.CircuitBreaker que loguea los cambios de estado.
func New(cfg Config, log logger.Logger) *gobreaker.CircuitBreaker {
	if log == nil {
		log = logger.Nop()
	}
	st := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < cfg.MinRequests {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	}
	if cfg.IsSuccessful != nil {
		st.IsSuccessful = cfg.IsSuccessful
	}
	return gobreaker.NewCircuitBreaker(st)
}
