package reminders

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"peds-aftercare/internal/platform/logger"
	"peds-aftercare/internal/ports/telemetry"

	"github.com/google/uuid"
)

const usageHint = "Please use format like: 'Take Zyrtec every 12 hours' or 'Take Ibuprofen every 6 hours for 3 days'"

// Service es el contrato que consume el loop de diálogo (HTTP y herramientas MCP).
type Service struct {
	reg    *Registry
	events telemetry.Sink
	log    logger.Logger
	now    func() time.Time
}

func NewService(reg *Registry, events telemetry.Sink, log logger.Logger) *Service {
	if events == nil {
		events = telemetry.Nop()
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		reg:    reg,
		events: events,
		log:    log,
		now:    time.Now,
	}
	reg.OnFire(s.observeFire)
	return s
}

type ScheduleResult struct {
	Schedule MedicationSchedule
	Replaced bool
	Message  string
}

// CreateOrReplaceFromText parsea la instrucción y la instala.
// Errores: *ParseError (repreguntar) o ErrInvalidSchedule.
func (s *Service) CreateOrReplaceFromText(ctx context.Context, raw string) (ScheduleResult, error) {
	d, err := ParseInstruction(raw)
	if err != nil {
		s.emit(ctx, "reminder.create", telemetry.OutcomeInvalid, "")
		return ScheduleResult{}, err
	}

	sched, replaced, err := s.reg.CreateOrReplace(d)
	if err != nil {
		s.emit(ctx, "reminder.create", telemetry.OutcomeInvalid, d.Medication)
		return ScheduleResult{}, err
	}

	outcome := telemetry.OutcomeOK
	if replaced {
		outcome = telemetry.OutcomeReplaced
	}
	s.emit(ctx, "reminder.create", outcome, sched.Medication)

	s.log.Info("medication reminder set", map[string]any{
		"medication":     sched.Medication,
		"interval_hours": sched.Interval.Hours(),
		"duration_days":  sched.DurationDays,
		"replaced":       replaced,
	})

	return ScheduleResult{
		Schedule: sched,
		Replaced: replaced,
		Message:  confirmationMessage(sched, replaced),
	}, nil
}

func (s *Service) Cancel(ctx context.Context, name string) (MedicationSchedule, error) {
	sched, err := s.reg.Cancel(name)
	if err != nil {
		s.emit(ctx, "reminder.cancel", telemetry.OutcomeNotFound, DisplayName(name))
		return MedicationSchedule{}, err
	}
	s.emit(ctx, "reminder.cancel", telemetry.OutcomeOK, sched.Medication)
	return sched, nil
}

func (s *Service) CancelAll(ctx context.Context) int {
	n := s.reg.CancelAll()
	s.emit(ctx, "reminder.cancel_all", telemetry.OutcomeOK, strconv.Itoa(n))
	return n
}

func (s *Service) Get(_ context.Context, name string) (MedicationSchedule, error) {
	return s.reg.Get(name)
}

func (s *Service) ListActive(_ context.Context) []MedicationSchedule {
	return s.reg.ListActive()
}

func (s *Service) observeFire(res FireResult) {
	outcome, op := telemetry.OutcomeOK, "reminder.fire"
	if !res.Continue {
		outcome, op = telemetry.OutcomeRetired, "reminder.retire"
	}
	s.emit(context.Background(), op, outcome, res.Schedule.Medication)
}

func (s *Service) emit(ctx context.Context, op string, outcome telemetry.Outcome, subject string) {
	e := telemetry.Event{
		ID:        uuid.NewString(),
		Operation: op,
		Outcome:   outcome,
		Subject:   subject,
		Timestamp: s.now(),
	}
	if err := s.events.Emit(ctx, e); err != nil {
		s.log.Warn("telemetry emit failed", map[string]any{"operation": op, "error": err})
	}
}

// FormatHours: 6 -> "6", 0.5 -> "0.5".
func FormatHours(d time.Duration) string {
	return strconv.FormatFloat(d.Hours(), 'f', -1, 64)
}

func confirmationMessage(s MedicationSchedule, replaced bool) string {
	var b strings.Builder
	if replaced {
		fmt.Fprintf(&b, "Reminder for %s updated: every %s hours", s.Medication, FormatHours(s.Interval))
	} else {
		fmt.Fprintf(&b, "Reminder set for %s every %s hours", s.Medication, FormatHours(s.Interval))
	}
	if s.Bounded() {
		fmt.Fprintf(&b, " for %d days", s.DurationDays)
	}
	fmt.Fprintf(&b, ". First reminder at %s.", s.NextDue.Format("15:04:05"))
	return b.String()
}

func CancelledMessage(s MedicationSchedule) string {
	return fmt.Sprintf("Reminder for %s has been cancelled.", s.Medication)
}

func CancelAllMessage(n int) string {
	if n == 1 {
		return "Cancelled 1 medication reminder."
	}
	return fmt.Sprintf("Cancelled %d medication reminders.", n)
}

// CorrectiveMessage arma el texto para repreguntar tras un ParseError.
func CorrectiveMessage(err *ParseError) string {
	r := err.Reason
	if r != "" {
		r = strings.ToUpper(r[:1]) + r[1:]
	}
	return fmt.Sprintf("Could not parse medication schedule: %s. %s", r, usageHint)
}
