package risk

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// errores con el nombre json del campo
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/risk/evaluate", evaluateRiskHandler(svc))
}

// evaluateRiskRequest: todos los campos son opcionales; ausente = no reportado.
// Sin tope superior en fiebre ni vómitos: un valor más alto nunca baja el tier.
type evaluateRiskRequest struct {
	FeverC              *float64 `json:"fever_c" example:"38.5"`
	PainScore           *int     `json:"pain_0_10" validate:"omitempty,min=0,max=10" example:"3"`
	VomitingEvents6h    *int     `json:"vomiting_events_6h" validate:"omitempty,min=0" example:"0"`
	BreathingDifficulty *bool    `json:"breathing_difficulty" example:"false"`
}

// assessmentResponse representa la evaluación devuelta por la API.
type assessmentResponse struct {
	RiskLevel     Tier     `json:"risk_level" swaggertype:"string" enums:"normal,watch,high_risk"`
	AlertFlag     bool     `json:"alert_flag"`
	Reasons       []string `json:"reasons"`
	IgnoredFields []string `json:"ignored_fields,omitempty"`
}

// evaluateRiskHandler godoc
// @Summary Evaluar riesgo de síntomas
// @Description Clasificación determinística (normal / watch / high_risk). Campos ausentes, con tipo incorrecto o fuera de rango se tratan como no reportados; los descartados se listan en ignored_fields. No es un diagnóstico.
// @Tags risk
// @Accept json
// @Produce json
// @Param payload body evaluateRiskRequest true "Síntomas reportados"
// @Success 200 {object} assessmentResponse
// @Failure 400 {string} string "invalid json"
// @Router /risk/evaluate [post]
func evaluateRiskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, malformed, err := decodeRiskRequest(r.Body)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		snap, ignored := req.toSnapshot()
		ignored = append(malformed, ignored...)
		a := svc.Evaluate(r.Context(), snap)

		writeJSON(w, http.StatusOK, assessmentResponse{
			RiskLevel:     a.Tier,
			AlertFlag:     a.Alert,
			Reasons:       a.Reasons,
			IgnoredFields: ignored,
		})
	}
}

// decodeRiskRequest lee campo por campo: un campo con tipo incorrecto
// (p.ej. "pain_0_10": 7.5 o "fever_c": "39") se descarta y se reporta,
// sin rechazar el resto. Solo un body que no es un objeto JSON es error.
func decodeRiskRequest(body io.Reader) (evaluateRiskRequest, []string, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		return evaluateRiskRequest{}, nil, err
	}

	var (
		req     evaluateRiskRequest
		ignored []string
	)
	present := func(name string) (json.RawMessage, bool) {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			return nil, false
		}
		return raw, true
	}

	if raw, ok := present("fever_c"); ok {
		if v, ok := jsonNumber(raw); ok {
			v = math.Max(-math.MaxFloat64, math.Min(v, math.MaxFloat64))
			req.FeverC = &v
		} else {
			ignored = append(ignored, "fever_c")
		}
	}
	for _, f := range []struct {
		name string
		dst  **int
	}{
		{"pain_0_10", &req.PainScore},
		{"vomiting_events_6h", &req.VomitingEvents6h},
	} {
		raw, ok := present(f.name)
		if !ok {
			continue
		}
		n, isCount := 0, false
		if v, ok := jsonNumber(raw); ok {
			n, isCount = Count(v)
		}
		if !isCount {
			ignored = append(ignored, f.name)
			continue
		}
		*f.dst = &n
	}
	if raw, ok := present("breathing_difficulty"); ok {
		var v bool
		if json.Unmarshal(raw, &v) == nil {
			req.BreathingDifficulty = &v
		} else {
			ignored = append(ignored, "breathing_difficulty")
		}
	}

	return req, ignored, nil
}

// jsonNumber acepta solo números JSON; fuera del rango de float64 devuelve
// ±Inf en vez de fallar, así un valor enorme no desaparece de la evaluación.
func jsonNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// toSnapshot descarta (no rechaza) los campos que no pasan validación.
func (req evaluateRiskRequest) toSnapshot() (SymptomSnapshot, []string) {
	var ignored []string

	err := validate.Struct(req)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "pain_0_10":
				req.PainScore = nil
			case "vomiting_events_6h":
				req.VomitingEvents6h = nil
			}
			ignored = append(ignored, fe.Field())
		}
	}

	snap := SymptomSnapshot{
		FeverC:           req.FeverC,
		PainScore:        req.PainScore,
		VomitingEvents6h: req.VomitingEvents6h,
	}
	if req.BreathingDifficulty != nil {
		snap.BreathingDifficulty = *req.BreathingDifficulty
	}
	return snap, ignored
}

// writeJSON igual al de reminders.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
