package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"peds-aftercare/internal/adapters/auth/statictoken"
	"peds-aftercare/internal/adapters/storage/memory"
	"peds-aftercare/internal/domain/reminders"
	"peds-aftercare/internal/domain/risk"
	"peds-aftercare/internal/ports/notify"
	"peds-aftercare/internal/ports/telemetry"
	"peds-aftercare/internal/router"
)

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()

	events := memory.NewEventsRepo(100)
	reg := reminders.NewRegistry(notify.Fanout{}, nil)
	t.Cleanup(reg.Close)

	opts.Reminders = reminders.NewService(reg, events, nil)
	opts.Risk = risk.NewService(events, nil)
	opts.Events = events

	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_ReminderLifecycle(t *testing.T) {
	ts := newServer(t, router.Options{})

	// 1) Crear recordatorio acotado
	{
		st, body := doReq(t, ts.URL, "POST", "/reminders", "", map[string]any{
			"instruction": "Take Ibuprofen every 6 hours for 3 days",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create reminder, got %d body=%s", st, string(body))
		}
		var out struct {
			Schedule struct {
				Medication    string  `json:"medication"`
				IntervalHours float64 `json:"interval_hours"`
				DurationDays  *int    `json:"duration_days"`
			} `json:"schedule"`
			Replaced bool   `json:"replaced"`
			Message  string `json:"message"`
		}
		mustJSON(t, body, &out)
		if out.Schedule.Medication != "Ibuprofen" || out.Schedule.IntervalHours != 6 {
			t.Fatalf("unexpected schedule: %+v", out.Schedule)
		}
		if out.Schedule.DurationDays == nil || *out.Schedule.DurationDays != 3 {
			t.Fatalf("expected duration_days=3, got %v", out.Schedule.DurationDays)
		}
		if !strings.HasPrefix(out.Message, "Reminder set for Ibuprofen every 6 hours for 3 days.") {
			t.Fatalf("unexpected message: %q", out.Message)
		}
	}

	// 2) Reemplazar (mismo medicamento, otro case) => 200
	{
		st, body := doReq(t, ts.URL, "POST", "/reminders", "", map[string]any{
			"instruction": "give ibuprofen every 8 hours",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 replace reminder, got %d body=%s", st, string(body))
		}
	}

	// 3) Otro medicamento
	{
		st, body := doReq(t, ts.URL, "POST", "/reminders", "", map[string]any{
			"instruction": "Take Zyrtec every 12 hours",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create reminder, got %d body=%s", st, string(body))
		}
	}

	// 4) Listar: ordenado por próximo disparo
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var list []struct {
			Medication    string  `json:"medication"`
			IntervalHours float64 `json:"interval_hours"`
		}
		mustJSON(t, body, &list)
		if len(list) != 2 {
			t.Fatalf("expected 2 active reminders, got %d", len(list))
		}
		if list[0].Medication != "Ibuprofen" || list[0].IntervalHours != 8 {
			t.Fatalf("expected Ibuprofen every 8h first, got %+v", list[0])
		}
	}

	// 5) Cancelar y volver a cancelar
	{
		st, body := doReq(t, ts.URL, "DELETE", "/reminders/IBUPROFEN", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "DELETE", "/reminders/ibuprofen", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 second cancel, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "no active reminder found for Ibuprofen") {
			t.Fatalf("unexpected not found body=%s", string(body))
		}
	}

	// 6) Cancelar todos
	{
		st, body := doReq(t, ts.URL, "DELETE", "/reminders", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel all, got %d body=%s", st, string(body))
		}
		var out struct {
			Cancelled int `json:"cancelled"`
		}
		mustJSON(t, body, &out)
		if out.Cancelled != 1 {
			t.Fatalf("expected 1 cancelled, got %d", out.Cancelled)
		}
	}

	// 7) Historial de eventos
	{
		st, body := doReq(t, ts.URL, "GET", "/events?operation=reminder.create", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 events, got %d body=%s", st, string(body))
		}
		var evs []struct {
			Outcome string `json:"outcome"`
		}
		mustJSON(t, body, &evs)
		if len(evs) != 3 || evs[1].Outcome != "replaced" {
			t.Fatalf("unexpected create events: %+v", evs)
		}
	}
}

func TestHTTP_CreateReminder_ParseFailure(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "POST", "/reminders", "", map[string]any{
		"instruction": "Take Zyrtec every 0 hours",
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for zero interval, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), "Take Zyrtec every 12 hours") {
		t.Fatalf("expected usage hint, got %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/reminders", "", map[string]any{"instruction": ""})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty instruction, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "GET", "/reminders/zyrtec", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 get unknown, got %d", st)
	}
}

func TestHTTP_RiskEvaluate(t *testing.T) {
	ts := newServer(t, router.Options{})

	cases := []struct {
		payload map[string]any
		level   string
		alert   bool
		reasons int
	}{
		{map[string]any{"fever_c": 39.2, "pain_0_10": 8, "vomiting_events_6h": 2, "breathing_difficulty": false}, "high_risk", true, 2},
		{map[string]any{"fever_c": 38.5, "pain_0_10": 3, "vomiting_events_6h": 0}, "watch", false, 1},
		{map[string]any{}, "normal", false, 0},
	}

	for _, tc := range cases {
		st, body := doReq(t, ts.URL, "POST", "/risk/evaluate", "", tc.payload)
		if st != http.StatusOK {
			t.Fatalf("expected 200 risk, got %d body=%s", st, string(body))
		}
		var out struct {
			RiskLevel string   `json:"risk_level"`
			AlertFlag bool     `json:"alert_flag"`
			Reasons   []string `json:"reasons"`
		}
		mustJSON(t, body, &out)
		if out.RiskLevel != tc.level || out.AlertFlag != tc.alert || len(out.Reasons) != tc.reasons {
			t.Fatalf("payload %v: got %+v", tc.payload, out)
		}
	}

	// fuera de rango => ignorado, no 400
	st, body := doReq(t, ts.URL, "POST", "/risk/evaluate", "", map[string]any{"pain_0_10": 42})
	if st != http.StatusOK || !strings.Contains(string(body), `"ignored_fields":["pain_0_10"]`) {
		t.Fatalf("expected ignored pain, got %d body=%s", st, string(body))
	}
}

func TestHTTP_RiskEvaluate_WrongTypedFieldsAreIgnored(t *testing.T) {
	ts := newServer(t, router.Options{})

	cases := []struct {
		body    string
		level   string
		ignored []string
	}{
		{`{"pain_0_10":7.5}`, "normal", []string{"pain_0_10"}},
		{`{"fever_c":"39"}`, "normal", []string{"fever_c"}},
		{`{"fever_c":"39","pain_0_10":8}`, "high_risk", []string{"fever_c"}},
		{`{"breathing_difficulty":"yes","vomiting_events_6h":3}`, "high_risk", []string{"breathing_difficulty"}},
	}

	for _, tc := range cases {
		st, body := doReq(t, ts.URL, "POST", "/risk/evaluate", "", json.RawMessage(tc.body))
		if st != http.StatusOK {
			t.Fatalf("body %s: expected 200, got %d resp=%s", tc.body, st, string(body))
		}
		var out struct {
			RiskLevel     string   `json:"risk_level"`
			IgnoredFields []string `json:"ignored_fields"`
		}
		mustJSON(t, body, &out)
		if out.RiskLevel != tc.level || strings.Join(out.IgnoredFields, ",") != strings.Join(tc.ignored, ",") {
			t.Fatalf("body %s: got %+v", tc.body, out)
		}
	}

	st, _ := doReq(t, ts.URL, "POST", "/risk/evaluate", "", json.RawMessage(`[1,2,3]`))
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-object body, got %d", st)
	}
}

func TestHTTP_RiskEvaluate_MonotonicAtExtremes(t *testing.T) {
	ts := newServer(t, router.Options{})

	tierRank := map[string]int{"normal": 0, "watch": 1, "high_risk": 2}
	series := []struct {
		field  string
		values []string
	}{
		{"fever_c", []string{"36.5", "38.0", "39.0", "44.9", "45", "45.5", "60", "1e6", "1e400"}},
		{"vomiting_events_6h", []string{"0", "2", "3", "100", "101", "100000", "1e12", "1e400"}},
	}

	for _, sr := range series {
		prev := -1
		for _, v := range sr.values {
			payload := json.RawMessage(`{"` + sr.field + `":` + v + `}`)
			st, body := doReq(t, ts.URL, "POST", "/risk/evaluate", "", payload)
			if st != http.StatusOK {
				t.Fatalf("%s=%s: expected 200, got %d", sr.field, v, st)
			}
			var out struct {
				RiskLevel     string   `json:"risk_level"`
				IgnoredFields []string `json:"ignored_fields"`
			}
			mustJSON(t, body, &out)
			if len(out.IgnoredFields) != 0 {
				t.Fatalf("%s=%s: unexpected ignored fields %v", sr.field, v, out.IgnoredFields)
			}
			rank := tierRank[out.RiskLevel]
			if rank < prev {
				t.Fatalf("%s=%s: tier went down to %s", sr.field, v, out.RiskLevel)
			}
			prev = rank
		}
		if prev != tierRank["high_risk"] {
			t.Fatalf("%s: expected high_risk at the top of the range", sr.field)
		}
	}
}

func TestHTTP_RequiresTokenWhenVerifierSet(t *testing.T) {
	ts := newServer(t, router.Options{AuthVerifier: statictoken.NewVerifier("s3cret", "")})

	st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected health to stay public, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "GET", "/reminders", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", st)
	}

	st, body := doReq(t, ts.URL, "GET", "/reminders", "s3cret", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d body=%s", st, string(body))
	}
}

func TestHTTP_MetricsOptional(t *testing.T) {
	ts := newServer(t, router.Options{})
	st, _ := doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 metrics when disabled, got %d", st)
	}

	ts = newServer(t, router.Options{Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})})
	st, _ = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
}

var _ telemetry.Store = (*memory.EventsRepo)(nil)

func mustJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
