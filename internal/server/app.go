// Package server initializes and runs the credential-management backend.
// It wires the store, notifier and auth service together, handles OS
// signals and tears the process-wide resources down on shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dsmirnovs/authbox/internal/logging"
	"github.com/dsmirnovs/authbox/internal/server/auth"
	"github.com/dsmirnovs/authbox/internal/server/config"
	"github.com/dsmirnovs/authbox/internal/server/httpapi"
	"github.com/dsmirnovs/authbox/internal/server/mail"
	"github.com/dsmirnovs/authbox/internal/server/shared/db"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	manager    db.RepositoryManager
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewDefault()

	manager, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var notifier mail.Notifier
	if cfg.SMTPHost != "" {
		notifier = mail.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	} else {
		logger.Warn(ctx, "no SMTP host configured, reset codes go to the log only")
		notifier = mail.NewLogNotifier(logger)
	}

	svc, err := auth.NewService(manager, notifier, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("auth service init error: %w", err)
	}

	httpServer := httpapi.NewServer(cfg.EndpointAddr, logger, svc, cfg.DevRoutes)

	return &App{config: cfg, logger: logger, manager: manager, httpServer: httpServer}, nil
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "closing store connection", "error", err)
	}

	app.logger.Info(ctx, "Stopped.")
}
