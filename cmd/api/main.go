package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-composable-ledger/internal/adapter"
	"github.com/feral-file/ff-composable-ledger/internal/api/middleware"
	"github.com/feral-file/ff-composable-ledger/internal/api/server"
	"github.com/feral-file/ff-composable-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-composable-ledger/internal/config"
	"github.com/feral-file/ff-composable-ledger/internal/ledger"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
	"github.com/feral-file/ff-composable-ledger/internal/multitoken"
	"github.com/feral-file/ff-composable-ledger/internal/parent"
	"github.com/feral-file/ff-composable-ledger/internal/ratelimit"
	"github.com/feral-file/ff-composable-ledger/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ledger-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Composable Ledger API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if cfg.Database.ReadHost != "" {
		if err := store.RegisterReadReplica(db, postgres.Open(cfg.Database.ReadDSN())); err != nil {
			logger.FatalCtx(ctx, "Failed to register read replica", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Registered read replica", zap.String("read_host", cfg.Database.ReadHost))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Restore parent tokens
	parents := parent.NewRegistry(parent.Config{
		Name:    cfg.Ledger.Name,
		Symbol:  cfg.Ledger.Symbol,
		BaseURI: cfg.Ledger.BaseURI,
	}, dataStore)
	if err := parents.Load(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to load parent tokens", zap.Error(err))
	}

	// Child registries served in-process
	directory := multitoken.NewDirectory()
	for _, address := range cfg.Ledger.Registries {
		if _, err := directory.NewRegistry(common.HexToAddress(address)); err != nil {
			logger.FatalCtx(ctx, "Failed to create child registry", zap.Error(err), zap.String("registry", address))
		}
	}
	logger.InfoCtx(ctx, "Initialized child registries", zap.Strings("registries", cfg.Ledger.Registries))

	// Restore the ledger and let it receive child tokens
	ledgerAddress := common.HexToAddress(cfg.Ledger.Address)
	composable := ledger.NewLedger(ledger.Config{Address: ledgerAddress}, parents, directory, dataStore, adapter.NewClock())
	if err := composable.Load(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to load ledger", zap.Error(err))
	}
	directory.RegisterReceiver(ledgerAddress, composable)
	logger.InfoCtx(ctx, "Loaded ledger", zap.String("address", ledgerAddress.Hex()))

	// Rate limit ledger writes per caller
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		redisClient := adapter.NewRedisClient(cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB)
		limiter, err = ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerSecond:       cfg.RateLimit.RequestsPerSecond,
			Burst:                   cfg.RateLimit.Burst,
			KeyPrefix:               cfg.RateLimit.RedisKeyPrefix,
			EnableLocalFallback:     cfg.RateLimit.EnableLocalFallback,
			LocalFallbackMultiplier: cfg.RateLimit.LocalFallbackFactor,
		}, redisClient, adapter.NewClock())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err), zap.String("redis_addr", cfg.RateLimit.RedisAddr))
		}
		defer func() {
			if err := limiter.Close(); err != nil {
				logger.Warn("Failed to close rate limiter", zap.Error(err))
			}
		}()
	} else {
		logger.WarnCtx(ctx, "Rate limiting disabled")
	}

	// Create server config
	serverConfig := server.Config{
		Debug:              cfg.Debug,
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		ReadTimeout:        time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:       time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:        time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		RateLimiter: limiter,
	}

	// Create and start server
	srv := server.New(serverConfig, executor.NewExecutor(composable, parents, directory, dataStore))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
