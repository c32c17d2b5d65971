package router

import (
	"net/http"

	_ "peds-aftercare/docs"
	"peds-aftercare/internal/domain/careevents"
	"peds-aftercare/internal/domain/reminders"
	"peds-aftercare/internal/domain/risk"
	"peds-aftercare/internal/middleware"
	"peds-aftercare/internal/platform/logger"
	"peds-aftercare/internal/ports/auth"
	"peds-aftercare/internal/ports/telemetry"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Log logger.Logger

	// AuthVerifier puede ser nil (modo dev: sin auth, acepta X-Debug-User-ID).
	// Si viene, las rutas de dominio exigen Bearer token.
	AuthVerifier auth.AuthVerifier

	Reminders *reminders.Service
	Risk      *risk.Service

	// Events opcional: habilita GET /events.
	Events telemetry.Store

	// Metrics opcional: handler de Prometheus para GET /metrics.
	Metrics http.Handler
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(middleware.Recover(opts.Log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Rutas por módulo
	r.Group(func(g chi.Router) {
		if opts.AuthVerifier != nil {
			g.Use(middleware.RequireAuth)
		}
		if opts.Reminders != nil {
			reminders.RegisterRoutes(g, opts.Reminders)
		}
		if opts.Risk != nil {
			risk.RegisterRoutes(g, opts.Risk)
		}
		if opts.Events != nil {
			careevents.RegisterRoutes(g, opts.Events)
		}
	})

	return r
}
