package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	consolehttp "github.com/aussiebroadwan/rolesconsole/internal/console/http"
	"github.com/aussiebroadwan/rolesconsole/internal/console/summary"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/jwtx"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application is the console web server with all of its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	directory *directorysdk.Client
	view      *summary.View

	server *http.Server
	router *consolehttp.Router
}

// New wires the directory client, the dashboard view and the HTTP server.
// It does not contact the directory; the first dashboard load does.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "console",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, err := jwtx.NewHS256(cfg.TokenSecret, cfg.TokenIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}

	app.directory = directorysdk.NewClient(cfg.DirectoryURL, signer)
	app.view = summary.NewView(app.directory, summary.WithTimeout(cfg.FetchTimeout))

	if err := app.initHTTP(); err != nil {
		return nil, err
	}
	return app, nil
}

// Handler exposes the router for in-process use.
func (app *Application) Handler() http.Handler { return app.router }

// View exposes the dashboard summary.
func (app *Application) View() *summary.View { return app.view }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("console starting",
		"port", app.cfg.Port,
		"directory_url", app.cfg.DirectoryURL,
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down console...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
		return err
	}

	app.logger.Info("console stopped")
	return nil
}

func (app *Application) initHTTP() error {
	router, err := consolehttp.NewRouter(app.directory, app.view, BuildVersion, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
