package careevents

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"peds-aftercare/internal/ports/telemetry"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes expone el historial de eventos (auditoría de cuidados).
func RegisterRoutes(r chi.Router, store telemetry.Store) {
	r.Get("/events", listEventsHandler(store))
}

type eventResponse struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation" example:"reminder.fire"`
	Outcome   string    `json:"outcome" example:"ok"`
	Subject   string    `json:"subject,omitempty" example:"Ibuprofen"`
	At        time.Time `json:"at"`
}

// listEventsHandler godoc
// @Summary Historial de eventos
// @Description Eventos más recientes primero (recordatorios creados, disparos, cancelaciones, evaluaciones de riesgo).
// @Tags events
// @Produce json
// @Param operation query string false "Filtrar por operación (p.ej. reminder.fire)"
// @Param subject query string false "Filtrar por medicamento"
// @Param limit query int false "Máximo de resultados (default 50, máx 500)"
// @Success 200 {array} eventResponse
// @Failure 400 {string} string "invalid limit"
// @Router /events [get]
func listEventsHandler(store telemetry.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		f := telemetry.ListFilter{
			Operation: strings.TrimSpace(q.Get("operation")),
			Subject:   strings.TrimSpace(q.Get("subject")),
		}
		if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			f.Limit = n
		}

		items, err := store.ListRecent(r.Context(), f)
		if err != nil {
			http.Error(w, "could not list events", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, eventResponse{
				ID:        e.ID,
				Operation: e.Operation,
				Outcome:   string(e.Outcome),
				Subject:   e.Subject,
				At:        e.Timestamp,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
