package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reminders", func(rr chi.Router) {
		rr.Post("/", createReminderHandler(svc))
		rr.Get("/", listRemindersHandler(svc))
		rr.Delete("/", cancelAllRemindersHandler(svc))

		rr.Get("/{medication}", getReminderHandler(svc))
		rr.Delete("/{medication}", cancelReminderHandler(svc))
	})
}

// createReminderRequest es el texto libre tal como lo dijo el cuidador.
type createReminderRequest struct {
	Instruction string `json:"instruction" validate:"required,max=500" example:"Take Ibuprofen every 6 hours for 3 days"`
}

// scheduleResponse representa un recordatorio activo.
type scheduleResponse struct {
	ID            string     `json:"id"`
	Medication    string     `json:"medication"`
	IntervalHours float64    `json:"interval_hours"`
	DurationDays  *int       `json:"duration_days,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	NextDue       time.Time  `json:"next_due"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	RemindersSent int        `json:"reminders_sent"`
}

type createReminderResponse struct {
	Schedule scheduleResponse `json:"schedule"`
	Replaced bool             `json:"replaced"`
	Message  string           `json:"message"`
}

type cancelAllResponse struct {
	Cancelled int    `json:"cancelled"`
	Message   string `json:"message"`
}

// createReminderHandler godoc
// @Summary Crear o reemplazar recordatorio
// @Description Interpreta una instrucción libre ("Take Zyrtec every 12 hours [for 3 days]") y arma un recordatorio recurrente. Si ya existe uno para el mismo medicamento, se reemplaza.
// @Tags reminders
// @Accept json
// @Produce json
// @Param payload body createReminderRequest true "Instrucción libre"
// @Success 201 {object} createReminderResponse
// @Success 200 {object} createReminderResponse "reemplazado"
// @Failure 400 {string} string "invalid json / instruction required"
// @Failure 422 {string} string "mensaje correctivo del parser"
// @Router /reminders [post]
func createReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "instruction is required (max 500 chars)", http.StatusBadRequest)
			return
		}

		res, err := svc.CreateOrReplaceFromText(r.Context(), req.Instruction)
		if err != nil {
			var pe *ParseError
			switch {
			case errors.As(err, &pe):
				http.Error(w, CorrectiveMessage(pe), http.StatusUnprocessableEntity)
			case errors.Is(err, ErrInvalidSchedule):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		status := http.StatusCreated
		if res.Replaced {
			status = http.StatusOK
		}
		writeJSON(w, status, createReminderResponse{
			Schedule: toScheduleResponse(res.Schedule),
			Replaced: res.Replaced,
			Message:  res.Message,
		})
	}
}

// listRemindersHandler godoc
// @Summary Listar recordatorios activos
// @Description Ordenados por próximo disparo (ascendente).
// @Tags reminders
// @Produce json
// @Success 200 {array} scheduleResponse
// @Router /reminders [get]
func listRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.ListActive(r.Context())
		out := make([]scheduleResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toScheduleResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getReminderHandler godoc
// @Summary Ver un recordatorio
// @Tags reminders
// @Produce json
// @Param medication path string true "Nombre del medicamento (case-insensitive)"
// @Success 200 {object} scheduleResponse
// @Failure 404 {string} string "no active reminder found"
// @Router /reminders/{medication} [get]
func getReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Get(r.Context(), chi.URLParam(r, "medication"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(s))
	}
}

// cancelReminderHandler godoc
// @Summary Cancelar recordatorio
// @Description Cancela el recordatorio del medicamento. Tras responder, no se entregan más avisos.
// @Tags reminders
// @Produce json
// @Param medication path string true "Nombre del medicamento (case-insensitive)"
// @Success 200 {object} scheduleResponse
// @Failure 404 {string} string "no active reminder found"
// @Router /reminders/{medication} [delete]
func cancelReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Cancel(r.Context(), chi.URLParam(r, "medication"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(s))
	}
}

// cancelAllRemindersHandler godoc
// @Summary Cancelar todos los recordatorios
// @Tags reminders
// @Produce json
// @Success 200 {object} cancelAllResponse
// @Router /reminders [delete]
func cancelAllRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := svc.CancelAll(r.Context())
		writeJSON(w, http.StatusOK, cancelAllResponse{
			Cancelled: n,
			Message:   CancelAllMessage(n),
		})
	}
}

func toScheduleResponse(s MedicationSchedule) scheduleResponse {
	out := scheduleResponse{
		ID:            s.ID,
		Medication:    s.Medication,
		IntervalHours: s.Interval.Hours(),
		CreatedAt:     s.CreatedAt,
		NextDue:       s.NextDue,
		RemindersSent: s.FireCount,
	}
	if s.Bounded() {
		days := s.DurationDays
		ends := s.EndsAt()
		out.DurationDays = &days
		out.EndsAt = &ends
	}
	return out
}

// writeJSON: misma forma en cada módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
