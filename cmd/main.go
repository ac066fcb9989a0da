package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/marcodesign21/chaset-tracker/docs"
	"github.com/marcodesign21/chaset-tracker/internal/config"
	"github.com/marcodesign21/chaset-tracker/internal/handlers"
	"github.com/marcodesign21/chaset-tracker/internal/logger"
	"github.com/marcodesign21/chaset-tracker/internal/repository"
	"github.com/marcodesign21/chaset-tracker/internal/repository/db"
	"github.com/marcodesign21/chaset-tracker/internal/server"
	"github.com/marcodesign21/chaset-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

// @title        Chaset API
// @version      1.0
// @description  Personal ledger and credential vault. Credentials are stored unencrypted.
// @BasePath     /
func main() {
	configPath := pflag.StringP("config", "c", "", "path to a config file (default configs/config.yml)")
	pflag.Parse()

	// load config.yml + CHASET_* env
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, dialect, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to open database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	gin.SetMode(cfg.Server.Mode)
	repos := repository.NewRepository(conn, dialect)
	services := service.NewService(repos, cfg.Auth.BcryptCost)
	apiHandler := handlers.NewHandler(services, log, cfg.CORS.AllowedOrigin)

	// start HTTP server
	srv := server.New(cfg.Server)
	runHTTPServer(srv, apiHandler, log)
	log.Infow("server started", "port", cfg.Server.Port, "db_driver", cfg.DB.Driver)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// openDB opens the configured store and makes sure the schema exists.
func openDB(cfg config.DBConfig, log *logger.Logger) (*sql.DB, db.Dialect, error) {
	log.Infow("opening database", "driver", cfg.Driver)
	return db.Open(cfg.Driver, cfg.DataSource())
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
