package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/zonehunt/internal/api"
	"github.com/mcoot/zonehunt/internal/config"
	"github.com/mcoot/zonehunt/internal/engine"
	"github.com/mcoot/zonehunt/internal/factory"
	"github.com/mcoot/zonehunt/internal/services/auth"
	redisstorage "github.com/mcoot/zonehunt/internal/storage/redis"
)

func main() {
	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	authCfg := auth.DefaultConfig()
	authCfg.RequireAccount = cfg.RequireAccount
	factoryCfg := factory.Config{
		AuthConfig:      authCfg,
		EngineConfig:    engine.Config{TickInterval: cfg.TickInterval, Session: cfg.Session},
		DirectorKey:     cfg.DirectorKey,
		Logger:          logger,
		StorageType:     cfg.StorageType,
		CredentialsFile: cfg.CredentialsFile,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	if cfg.DirectorKey == "" {
		logger.Warn("DIRECTOR_KEY is empty; any connection may act as director")
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app.Start(ctx)

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Engine:      app.Engine,
		Realtime:    app.Realtime,
		DirectorKey: cfg.DirectorKey,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.Any("zone", cfg.Session.InitialZone))

	// Wait for shutdown or error
	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			exitCode = 1
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			exitCode = 1
		}
	}

	if err := app.Stop(); err != nil {
		logger.Error("failed to stop application", slog.String("error", err.Error()))
		exitCode = 1
	}

	logger.Info("server stopped")
	cancel()
	os.Exit(exitCode)
}
