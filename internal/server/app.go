// Package server wires the Talksy auth backend together: database, user
// store, credential verifier, token issuer, HTTP API and gRPC health
// endpoint, and runs them until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/talksy/internal/logging"
	"github.com/dmitrijs2005/talksy/internal/server/auth"
	"github.com/dmitrijs2005/talksy/internal/server/config"
	"github.com/dmitrijs2005/talksy/internal/server/httpapi"
	"github.com/dmitrijs2005/talksy/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/talksy/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/talksy/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	repos   repomanager.RepositoryManager
	handler http.Handler
}

// NewApp opens the database and builds every component. It fails when the
// configuration cannot produce a working token issuer.
func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.Debug)

	issuer, err := auth.NewIssuer([]byte(c.SecretKey), c.TokenTTL, nil)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.NewRepositoryManager(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	verifier := services.NewCredentialVerifier(rm.Users(db), logger)
	userService := services.NewUserService(db, rm, logger)
	metrics := httpapi.NewMetrics(nil)

	handler := httpapi.NewRouter(httpapi.RouterDeps{
		Auth: httpapi.NewAuthHandlers(httpapi.AuthDeps{
			Verifier:             verifier,
			Issuer:               issuer,
			Cookies:              auth.NewCookiePolicy(c.CookieName, c.Production),
			Logger:               logger,
			Metrics:              metrics,
			ConcealUserExistence: c.ConcealUserExistence,
		}),
		Users:         httpapi.NewUserHandlers(userService, logger),
		Metrics:       metrics,
		DB:            db,
		Logger:        logger,
		AllowedOrigin: c.AllowedOrigin,
	})

	return &App{config: c, logger: logger, db: db, repos: rm, handler: handler}, nil
}

// Handler returns the HTTP surface.
func (app *App) Handler() http.Handler { return app.handler }

// Migrate applies pending schema migrations.
func (app *App) Migrate(ctx context.Context) error {
	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) runHTTPServer(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves HTTP and gRPC until ctx is cancelled, a signal arrives or either
// server fails. The database is closed on return.
func (app *App) Run(ctx context.Context) error {
	defer app.db.Close()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	if app.config.RunMigrations {
		if err := app.Migrate(ctx); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.runHTTPServer(ctx)
	})

	g.Go(func() error {
		return gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.db).Run(ctx)
	})

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}
