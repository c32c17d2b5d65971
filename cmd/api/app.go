package main

import (
	"context"
	"database/sql"
	"io"

	"peds-aftercare/internal/adapters/notify/console"
	"peds-aftercare/internal/adapters/notify/webhook"
	"peds-aftercare/internal/adapters/storage/memory"
	pg "peds-aftercare/internal/adapters/storage/postgres"
	"peds-aftercare/internal/adapters/telemetry/logsink"
	promsink "peds-aftercare/internal/adapters/telemetry/prometheus"
	"peds-aftercare/internal/domain/reminders"
	"peds-aftercare/internal/domain/risk"
	"peds-aftercare/internal/platform/config"
	"peds-aftercare/internal/platform/logger"
	"peds-aftercare/internal/ports/notify"
	"peds-aftercare/internal/ports/telemetry"

	"go.uber.org/zap/zapcore"
)

// app agrupa las dependencias armadas una vez por proceso.
type app struct {
	cfg config.Config
	log logger.Logger

	registry  *reminders.Registry
	reminders *reminders.Service
	risk      *risk.Service

	events  telemetry.Store
	metrics *promsink.Sink
	db      *sql.DB
}

// buildApp: console es donde se imprimen los banners de recordatorio
// (stderr en modo MCP, porque stdout es del protocolo).
func buildApp(ctx context.Context, cfg config.Config, log logger.Logger, consoleOut io.Writer) (*app, error) {
	a := &app{cfg: cfg, log: log}

	// Sinks de notificación
	var sinks notify.Fanout
	if cfg.NotifyConsole {
		sinks = append(sinks, console.New(consoleOut))
	}
	if cfg.NotifyWebhookURL != "" {
		sinks = append(sinks, webhook.New(webhook.Config{
			URL:     cfg.NotifyWebhookURL,
			Timeout: cfg.NotifyTimeout,
		}, log))
	}

	// Store de eventos: Postgres si hay DSN, si no in-memory
	if cfg.DBDSN != "" {
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.db = db
		a.events = pg.NewEventsRepo(db, log)
		log.Info("care events stored in postgres", nil)
	} else {
		a.events = memory.NewEventsRepo(0)
	}

	events := telemetry.Multi{logsink.New(log), a.events}
	if cfg.MetricsEnabled {
		m, err := promsink.New("aftercare")
		if err != nil {
			a.close()
			return nil, err
		}
		a.metrics = m
		events = append(events, m)
	}

	a.registry = reminders.NewRegistry(sinks, log.With(map[string]any{"component": "reminders"}))
	a.reminders = reminders.NewService(a.registry, events, log)
	a.risk = risk.NewService(events, log)

	if a.metrics != nil {
		err := a.metrics.TrackActive("aftercare", "active_reminders", "Medication reminders currently scheduled.",
			func() float64 { return float64(len(a.registry.ListActive())) })
		if err != nil {
			a.close()
			return nil, err
		}
	}

	return a, nil
}

// close detiene los timers, espera notificaciones en vuelo y cierra la base.
func (a *app) close() {
	if a.registry != nil {
		a.registry.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("postgres close failed", map[string]any{"error": err})
		}
	}
	if z, ok := a.log.(*logger.ZapLogger); ok {
		_ = z.Sync()
	}
}

func newLogger(cfg config.Config, out io.Writer) logger.Logger {
	opts := logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	}
	if out != nil {
		opts.Output = zapcore.Lock(zapcore.AddSync(out))
	}
	return logger.New(opts)
}
