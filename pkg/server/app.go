package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"BCBSeries/pkg/config"
	xhttp "BCBSeries/pkg/http"
	applogger "BCBSeries/pkg/logger"

	"github.com/labstack/echo/v4"
)

// maxHealthErrors bounds the recent-error list in /healthz.
const maxHealthErrors = 10

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	log         *applogger.Logger
	httpHandler xhttp.Handler
	middleware  []echo.MiddlewareFunc
	httpServer  *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler) *App {
	return &App{cfg: cfg, log: l, httpHandler: handler}
}

// Use appends middleware applied after the server's built-in chain.
func (a *App) Use(m ...echo.MiddlewareFunc) { a.middleware = append(a.middleware, m...) }

// Server builds the HTTP server without starting it.
func (a *App) Server() *xhttp.Server {
	if a.httpServer == nil {
		a.httpServer = xhttp.NewServer(a.httpHandler,
			xhttp.WithHost(a.cfg.Server.Host),
			xhttp.WithPort(a.cfg.Server.Port),
			xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
			xhttp.WithCORS(a.cfg.Server.CORS),
			xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.SlowThreshold),
			xhttp.WithLogger(a.log),
			xhttp.WithMiddleware(a.middleware...),
			xhttp.WithHealth(a.health),
		)
	}
	return a.httpServer
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	srv := a.Server()
	if err := srv.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("bcb series api started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("upstream", a.cfg.BCB.BaseURL),
		applogger.Bool("cache", a.cfg.Cache.Enabled),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(context.Background())
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}

func (a *App) health(context.Context) map[string]interface{} {
	out := map[string]interface{}{
		"environment": a.cfg.Environment,
		"cache":       a.cfg.Cache.Enabled,
	}
	if d := a.log.Digest(); d != nil {
		recent := d.Snapshot()
		if len(recent) > maxHealthErrors {
			recent = recent[:maxHealthErrors]
		}
		out["recent_errors"] = recent
	}
	return out
}
