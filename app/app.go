// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"finance-tracker/config"
	"finance-tracker/db"
	"finance-tracker/handler"
	"finance-tracker/logger"
	"finance-tracker/repository"
	"finance-tracker/router"
	"finance-tracker/service"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App holds the wired dependencies of a running server.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Router http.Handler
}

// New wires repositories, services and handlers around an open database.
// cache may be nil to disable read caching.
func New(cfg *config.Config, database *sql.DB, cache service.CacheClient) (*App, error) {
	credentials, err := service.NewCredentialStore(cfg.UserTable(), 0)
	if err != nil {
		return nil, fmt.Errorf("could not build credential store: %w", err)
	}
	tokens := service.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)

	transactionRepo := repository.NewTransactionRepository(database)
	transactionService := service.NewTransactionService(transactionRepo)
	if cache != nil {
		transactionService.WithCache(cache, cfg.Redis.TTL)
	}

	authService := service.NewAuthService(credentials, tokens)

	r := router.NewRouter(
		handler.NewHomeHandler(cfg.App.Developer, cfg.App.MissionStatement),
		handler.NewAuthHandler(authService),
		handler.NewTransactionHandler(transactionService),
		tokens,
	)

	return &App{Config: cfg, DB: database, Router: r}, nil
}

func Run() {
	logger.Init()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	if err := logger.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		logger.Log.Fatalf("Error configuring logger: %v", err)
	}
	logger.Log.Info("Configuration loaded successfully")

	if cfg.UsesDefaultSecret() {
		logger.Log.Warn("JWT secret is the development default; set JWT_SECRET_KEY in production")
	}
	if cfg.UsesDefaultUser() {
		logger.Log.Warn("Default login chris/password is enabled; configure auth.users in production")
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	database, err := db.Connect(startupCtx, cfg.Database.URL)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(database, cfg.Database.MigrationsPath); err != nil {
			logger.Log.Fatalf("Error running migrations: %v", err)
		}
	}

	var cache service.CacheClient
	if cfg.Redis.Addr != "" {
		rdb, err := db.ConnectRedis(startupCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Log.Fatalf("Error connecting to Redis: %v", err)
		}
		defer rdb.Close()
		cache = rdb
	}

	application, err := New(cfg, database, cache)
	if err != nil {
		logger.Log.Fatalf("Error wiring application: %v", err)
	}

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           otelhttp.NewHandler(application.Router, "finance-tracker"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logger.Log.Info("Server exited properly")
}
