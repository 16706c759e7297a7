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

	"aiot_brain/internal/config"
	"aiot_brain/internal/handlers"
	"aiot_brain/internal/llm"
	"aiot_brain/internal/logger"
	"aiot_brain/internal/repository"
	"aiot_brain/internal/repository/db"
	"aiot_brain/internal/server"
	"aiot_brain/internal/service"
	"aiot_brain/internal/thingsboard"
)

const shutdownTimeout = 10 * time.Second

// @title        AIoT Brain API
// @version      1.0
// @description  Telemetry views, aggregated statistics and AI analysis over ThingsBoard devices.
// @BasePath     /
func main() {
	// load configs/config.yml and BRAIN_* overrides
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleEncoding).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = log.Sync() }()

	// open analysis journal
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	platform := thingsboard.NewClient(thingsboard.Config{
		BaseURL:        cfg.ThingsBoard.URL,
		Username:       cfg.ThingsBoard.Username,
		Password:       cfg.ThingsBoard.Password,
		LoginTimeout:   cfg.ThingsBoard.LoginTimeout,
		QueryTimeout:   cfg.ThingsBoard.QueryTimeout,
		RequestTimeout: cfg.ThingsBoard.RequestTimeout,
	}, &http.Client{}, log.Named("thingsboard"))

	deps := service.Deps{
		Platform: platform,
		Repos:    repos,
		Log:      log.Named("service"),
		Location: cfg.Location(),
		Model:    cfg.LLM.Model,
		Language: cfg.LLM.Language,
	}
	if completer := newCompleter(cfg, log); completer != nil {
		deps.Completer = completer
	}

	services := service.NewService(deps)
	apiHandler := handlers.NewHandler(services, log.Named("http"), handlers.Options{
		Location:       cfg.Location(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	// start HTTP server
	srv := server.New(cfg.CORS.AllowedOrigins)
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// newCompleter returns nil when no API key is configured; /ask then answers 503.
func newCompleter(cfg *config.Config, log *logger.Logger) *llm.Client {
	client, err := llm.New(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	})
	if err != nil {
		log.Warnw("ai analysis disabled", "err", err)
		return nil
	}
	return client
}

// openDB initializes the SQLite journal using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DB.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "brain.db")
		path = "brain.db"
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("starting server", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
