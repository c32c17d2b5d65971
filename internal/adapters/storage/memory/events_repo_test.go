package memory

import (
	"context"
	"fmt"
	"testing"

	"peds-aftercare/internal/ports/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitN(t *testing.T, r *EventsRepo, n int, op string) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, r.Emit(context.Background(), telemetry.Event{
			ID:        fmt.Sprintf("%s-%d", op, i),
			Operation: op,
			Outcome:   telemetry.OutcomeOK,
			Subject:   "Ibuprofen",
		}))
	}
}

func TestEventsRepo_NewestFirst(t *testing.T) {
	r := NewEventsRepo(10)
	emitN(t, r, 3, "reminder.create")

	got, err := r.ListRecent(context.Background(), telemetry.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "reminder.create-2", got[0].ID)
	assert.Equal(t, "reminder.create-0", got[2].ID)
}

func TestEventsRepo_WrapsAround(t *testing.T) {
	r := NewEventsRepo(4)
	emitN(t, r, 6, "reminder.fire")

	got, err := r.ListRecent(context.Background(), telemetry.ListFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "reminder.fire-5", got[0].ID)
	assert.Equal(t, "reminder.fire-2", got[3].ID)
}

func TestEventsRepo_Filters(t *testing.T) {
	r := NewEventsRepo(20)
	emitN(t, r, 3, "reminder.create")
	emitN(t, r, 2, "risk.evaluate")
	require.NoError(t, r.Emit(context.Background(), telemetry.Event{
		ID: "z", Operation: "reminder.create", Subject: "Zyrtec",
	}))

	got, err := r.ListRecent(context.Background(), telemetry.ListFilter{Operation: "risk.evaluate"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = r.ListRecent(context.Background(), telemetry.ListFilter{Subject: "zyrtec"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "z", got[0].ID)

	got, err = r.ListRecent(context.Background(), telemetry.ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestEventsRepo_RequiresID(t *testing.T) {
	r := NewEventsRepo(2)
	assert.Error(t, r.Emit(context.Background(), telemetry.Event{Operation: "x"}))
}
