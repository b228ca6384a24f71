package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "todo_api/docs"
	"todo_api/internal/config"
	"todo_api/internal/handlers"
	"todo_api/internal/logger"
	"todo_api/internal/repository"
	"todo_api/internal/repository/db"
	"todo_api/internal/security"
	"todo_api/internal/server"
	"todo_api/internal/service"

	"github.com/jmoiron/sqlx"
)

// @title                       Todo Lists API
// @version                     1.0
// @description                 Users own todo lists, lists own items. Bearer-token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to open database", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	tokens, err := security.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalw("failed to init token manager", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, tokens)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, cfg, log)
}

// openDB connects to the configured database and bootstraps the schema if enabled.
func openDB(cfg config.Config, log *logger.Logger) (*sqlx.DB, error) {
	driver, _ := db.ParseURL(cfg.Database.URL)
	log.Infow("opening database", "driver", driver, "auto_migrate", cfg.Database.AutoMigrate)
	return db.Open(db.Options{
		URL:             cfg.Database.URL,
		AutoMigrate:     cfg.Database.AutoMigrate,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", server.Addr(port))
		if err := srv.Run(port, handler.Routes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg config.Config, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
