package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"peds-aftercare/internal/platform/breaker"
	"peds-aftercare/internal/platform/logger"
	"peds-aftercare/internal/ports/telemetry"

	"github.com/sony/gobreaker"
)

// EventsRepo persiste la telemetría en care_events.
// Las escrituras pasan por un circuit breaker: con la base caída, Emit falla rápido.
type EventsRepo struct {
	db *sql.DB
	cb *gobreaker.CircuitBreaker
}

func NewEventsRepo(db *sql.DB, log logger.Logger) *EventsRepo {
	return &EventsRepo{
		db: db,
		cb: breaker.New(breaker.DefaultConfig("postgres-care-events"), log),
	}
}

func (r *EventsRepo) Emit(ctx context.Context, e telemetry.Event) error {
	_, err := r.cb.Execute(func() (any, error) {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO care_events (
				id, operation, outcome, subject, occurred_at
			) VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (id) DO NOTHING
		`,
			e.ID,
			e.Operation,
			string(e.Outcome),
			e.Subject,
			e.Timestamp,
		)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("insert care event: %w", err)
	}
	return nil
}

func (r *EventsRepo) ListRecent(ctx context.Context, f telemetry.ListFilter) ([]telemetry.Event, error) {
	q, args := listQuery(f)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list care events: %w", err)
	}
	defer rows.Close()

	out := make([]telemetry.Event, 0)
	for rows.Next() {
		var e telemetry.Event
		var outcome string
		if err := rows.Scan(
			&e.ID,
			&e.Operation,
			&outcome,
			&e.Subject,
			&e.Timestamp,
		); err != nil {
			return nil, err
		}
		e.Outcome = telemetry.Outcome(outcome)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func listQuery(f telemetry.ListFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if op := strings.TrimSpace(f.Operation); op != "" {
		args = append(args, op)
		where = append(where, fmt.Sprintf("operation = $%d", len(args)))
	}
	if subject := strings.TrimSpace(f.Subject); subject != "" {
		args = append(args, subject)
		where = append(where, fmt.Sprintf("lower(subject) = lower($%d)", len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT id, operation, outcome, subject, occurred_at FROM care_events`)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	args = append(args, f.NormalizeLimit())
	fmt.Fprintf(&b, " ORDER BY occurred_at DESC, id DESC LIMIT $%d", len(args))

	return b.String(), args
}
