package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lawncare-booking/cmd"
	"lawncare-booking/internal/data/repository"
	"lawncare-booking/internal/wire"
	"lawncare-booking/pkg/database"
	"lawncare-booking/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.Storage.Driver),
		zap.String("sessions", config.Session.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, health, closeStores, err := openStores(ctx, config, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStores()

	// Wire all dependencies
	app := wire.Wiring(repos, config, prometheus.NewRegistry(), health, logger)

	if config.Admin.Username != "" && config.Admin.Password != "" {
		if err := app.Service.Auth.EnsureAdmin(ctx, config.Admin.Username, config.Admin.Password); err != nil {
			logger.Fatal("Failed to bootstrap admin account", zap.Error(err))
		}
	} else {
		logger.Warn("ADMIN_USERNAME/ADMIN_PASSWORD not set, no admin account bootstrapped")
	}

	go app.Service.Auth.RunSessionJanitor(ctx, config.Session.CleanupInterval)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// openStores builds the repository set for the configured drivers. The
// returned func releases every connection that was opened.
func openStores(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, wire.HealthCheck, func(), error) {
	var (
		repos   *repository.Repository
		health  wire.HealthCheck
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch config.Storage.Driver {
	case utils.DriverPostgres:
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return nil, nil, closeAll, err
		}
		closers = append(closers, db.Close)
		logger.Info("Database connected successfully")

		if err := database.Migrate(ctx, db, logger); err != nil {
			closeAll()
			return nil, nil, func() {}, err
		}

		repos = repository.NewRepository(db, logger)
		health = db.Ping
	default:
		repos = repository.NewMemoryRepository(logger)
		logger.Warn("Using in-memory storage, data is lost on restart")
	}

	switch config.Session.Driver {
	case utils.DriverRedis:
		client, err := database.InitRedis(ctx, config.Redis)
		if err != nil {
			closeAll()
			return nil, nil, func() {}, err
		}
		closers = append(closers, func() { client.Close() })
		repos.Session = repository.NewRedisSessionRepository(client, logger)
		logger.Info("Redis connected successfully")
	case utils.DriverMemory:
		if config.Storage.Driver != utils.DriverMemory {
			repos.Session = repository.NewMemorySessionRepository(logger)
		}
	}

	return repos, health, closeAll, nil
}
