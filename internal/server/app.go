// Package server wires the blog application together: storage, services,
// the web handler and the HTTP server, and runs it until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
	"github.com/dmitrijs2005/gophblog/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *web.Server
}

func NewApp(c *config.Config) (*App, error) {
	return newApp(c, logging.New(os.Stdout, c.LogLevel, "json"))
}

func newApp(c *config.Config, logger logging.Logger) (*App, error) {
	db, rm, err := repomanager.Open(c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	h, err := web.NewHandler(
		logger,
		services.NewUserService(db, rm),
		services.NewSessionService(db, rm, c.SessionValidityDuration),
		services.NewPostService(db, rm),
		web.NewCookieStore(c.SecretKey, c.SessionValidityDuration, c.CookieSecure),
		c.SecretKey,
		c.TokenValidityDuration,
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("handler init error: %w", err)
	}

	s := web.NewServer(c.EndpointAddrHTTP, logger, h.Router())

	return &App{config: c, logger: logger, db: db, server: s}, nil
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

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "error closing database", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
