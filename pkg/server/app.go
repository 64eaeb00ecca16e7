package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	xhttp "FinDash/pkg/http"
	applogger "FinDash/pkg/logger"
)

// Runner is a background component started with the app and stopped on shutdown.
type Runner interface {
	Start()
	Stop(ctx context.Context) error
}

// Closer releases an infrastructure client on shutdown.
type Closer struct {
	Name  string
	Close func() error
}

// App encapsulates the entire application lifecycle.
type App struct {
	httpServer      *xhttp.Server
	runners         []Runner
	closers         []Closer
	shutdownTimeout time.Duration
	l               *applogger.Logger
}

// New creates a new App. Closers run in reverse order on shutdown.
func New(httpServer *xhttp.Server, runners []Runner, closers []Closer, shutdownTimeout time.Duration, l *applogger.Logger) *App {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &App{
		httpServer:      httpServer,
		runners:         runners,
		closers:         closers,
		shutdownTimeout: shutdownTimeout,
		l:               l.With("app"),
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts every component and blocks until ctx is done, then shuts down.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	for _, r := range a.runners {
		r.Start()
	}

	<-ctx.Done()
	a.l.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	return a.shutdown(shutdownCtx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.l.Info("shutting down...")

	for _, r := range a.runners {
		if err := r.Stop(ctx); err != nil {
			a.l.Warn("runner stop error", applogger.Error(err))
		}
	}

	if err := a.httpServer.Stop(ctx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.Close(); err != nil {
			a.l.Warn("close error", applogger.String("component", c.Name), applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
