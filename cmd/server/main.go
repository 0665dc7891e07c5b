package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/oggyb/muzz-matching/internal/app"
	"github.com/oggyb/muzz-matching/internal/cache"
	"github.com/oggyb/muzz-matching/internal/config"
	"github.com/oggyb/muzz-matching/internal/db"
	"github.com/oggyb/muzz-matching/internal/gateway/userservice"
	"github.com/oggyb/muzz-matching/internal/logger"
	"github.com/oggyb/muzz-matching/internal/matching"
	"github.com/oggyb/muzz-matching/internal/server"
	matchingsvc "github.com/oggyb/muzz-matching/internal/service/matching"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return err
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return err
	}
	defer redisCache.Close()

	policy, err := matching.LoadPolicy(cfg.Matching.Policy, cfg.Matching.PolicyFile)
	if err != nil {
		log.Error("failed to load matching policy", "policy", cfg.Matching.Policy, "file", cfg.Matching.PolicyFile, "err", err)
		return err
	}

	profiles := userservice.NewCached(
		userservice.NewFromConfig(cfg, log.With("upstream", "user_service")),
		redisCache,
		cfg.UserService.CacheTTL,
		log,
	)

	appCtx := app.New(cfg, database, redisCache, log, profiles, policy)

	registrars := []server.Registrar{
		matchingsvc.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database, db.DefaultSeedUsers); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	log.Info("starting gRPC server",
		"addr", cfg.GRPC.Host+":"+cfg.GRPC.Port,
		"user_service", cfg.UserService.URL,
		"policy", cfg.Matching.Policy,
	)

	if err := server.StartGRPCServer(ctx, cfg, log, registrars...); err != nil {
		log.Error("failed to start gRPC server", "err", err)
		return err
	}
	return nil
}
