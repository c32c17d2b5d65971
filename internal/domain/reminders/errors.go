package reminders

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound        = errors.New("no active reminder")
	ErrInvalidSchedule = errors.New("invalid schedule")
)

const (
	ReasonNoName              = "could not find a medication name"
	ReasonNoInterval          = "could not find an interval"
	ReasonNonPositiveInterval = "interval must be positive"
	ReasonNonPositiveDuration = "duration must be positive"
	ReasonIntervalTooLong     = "interval must be at most 8760 hours (one year)"
	ReasonDurationTooLong     = "duration must be at most 3650 days"
)

// Topes: mantienen next-due y fin dentro del rango de time.Duration.
const (
	MaxInterval     = 8760 * time.Hour
	MaxDurationDays = 3650
)

// ParseError: la instrucción no se pudo interpretar; el caller debe repreguntar.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse medication schedule: %s", e.Reason)
}

func notFound(name string) error {
	return fmt.Errorf("%w found for %s", ErrNotFound, DisplayName(name))
}
