// Package server initializes and runs the Presto store server: it selects
// a storage backend, wires the account service and starts the HTTP
// endpoint, shutting everything down on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prestoapp/presto-server/internal/logging"
	"github.com/prestoapp/presto-server/internal/server/accounts"
	"github.com/prestoapp/presto-server/internal/server/config"
	"github.com/prestoapp/presto-server/internal/server/httpserver"
	"github.com/prestoapp/presto-server/internal/server/shared/db"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	manager  db.RepositoryManager
	accounts *accounts.Service
}

func newRepositoryManager(ctx context.Context, cfg *config.Config) (db.RepositoryManager, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.BackendBolt:
		return db.NewBoltRepositoryManager(cfg.BoltPath)
	case config.BackendMemory:
		return db.NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.StoreBackend)
	}
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	// The signing secret is immutable process-wide configuration; running
	// without one is a startup failure, not a per-request error.
	if cfg.SecretKey == "" {
		return nil, errors.New("missing JWT secret key")
	}

	manager, err := newRepositoryManager(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	as := accounts.NewService(manager.Accounts(), []byte(cfg.SecretKey))

	return &App{config: cfg, logger: logger, manager: manager, accounts: as}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.accounts, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.StoreBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err.Error())
	}
}
