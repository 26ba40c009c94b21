// Package server assembles the eulark API server: it opens the database
// pool, applies migrations, builds the services and runs the HTTP listener
// until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/eulark/eulark/internal/dbx"
	"github.com/eulark/eulark/internal/logging"
	"github.com/eulark/eulark/internal/server/auth"
	"github.com/eulark/eulark/internal/server/config"
	"github.com/eulark/eulark/internal/server/httpapi"
	"github.com/eulark/eulark/internal/server/mailer"
	"github.com/eulark/eulark/internal/server/metrics"
	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/eulark/eulark/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	closeDB func()
	server  *httpapi.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)

	db, closeDB, err := dbx.Open(ctx, c.DatabaseDSN, dbx.PoolOptions{
		MaxConns:       c.DatabaseMaxConns,
		ConnectTimeout: c.DatabaseConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	issuer := auth.NewIssuer([]byte(c.SecretKey))
	hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)
	mail := mailer.New(c.ResendAPIKey, c.MailFrom, logger)
	logos := services.NewSponsorLogoService(c)

	router := httpapi.NewRouter(httpapi.Deps{
		Auth:               services.NewAuthService(db, rm, c, issuer, hasher, mail, logger.With("service", "auth")),
		Players:            services.NewPlayerService(db, rm, c, logger.With("service", "player")),
		Content:            services.NewContentService(db, rm, logos, logger.With("service", "content")),
		Admin:              services.NewAdminService(db, rm, logger.With("service", "admin")),
		Logos:              logos,
		Issuer:             issuer,
		Metrics:            metrics.New(),
		Logger:             logger,
		CORSAllowedOrigins: c.CORSAllowedOrigins,
		Ping:               db.PingContext,
	})

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		closeDB: closeDB,
		server:  httpapi.NewHTTPServer(c.EndpointAddrHTTP, router, logger),
	}, nil
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
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
		cancelFunc()
	}
}

// Run blocks until a signal arrives or the listener fails, then closes the pool.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.closeDB()
	app.logger.Info(context.Background(), "App stopped")
}
