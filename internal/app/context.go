package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-matching/internal/cache"
	"github.com/oggyb/muzz-matching/internal/config"
	"github.com/oggyb/muzz-matching/internal/matching"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
	Config     *config.Config

	// Profiles is the user directory, usually the Redis-cached HTTP client.
	Profiles matching.ProfileGateway
	// Policy decides orientation compatibility; loaded once at startup.
	Policy matching.Policy
}

// New creates a new AppContext
func New(
	cfg *config.Config,
	db *gorm.DB,
	rdb *cache.RedisCache,
	logger *slog.Logger,
	profiles matching.ProfileGateway,
	policy matching.Policy,
) *AppContext {
	return &AppContext{
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Config:     cfg,
		Profiles:   profiles,
		Policy:     policy,
	}
}
