package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		ENV string
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		Driver   string
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	GRPC struct {
		Host string
		Port string
	}

	// UserService points at the external profile directory.
	UserService struct {
		URL      string
		Timeout  time.Duration
		RPS      float64
		Burst    int
		CacheTTL time.Duration
	}

	Matching struct {
		Policy          string
		PolicyFile      string
		MinPoolSize     int
		RecentWindow    int
		RecentOnly      bool
		AllowRecycling  bool
		InterestWorkers int
	}
}

// New builds the configuration from the environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App.ENV = getEnvDefault("APP_ENV", "production")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "matching_service")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.Driver = strings.ToLower(getEnvDefault("DB_DRIVER", "mysql"))
	cfg.DB.DSN = firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("MYSQL_DSN"))
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.User = getEnvDefault("DB_USER", "root")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "root")
		cfg.DB.Name = getEnvDefault("DB_NAME", "matching")

		switch cfg.DB.Driver {
		case "postgres":
			cfg.DB.Port = getEnvDefault("DB_PORT", "5432")
			cfg.DB.DSN = fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
				cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name,
			)
		case "sqlite":
			cfg.DB.DSN = getEnvDefault("SQLITE_PATH", "matching.db")
		default:
			cfg.DB.Port = getEnvDefault("DB_PORT", "3306")
			cfg.DB.DSN = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
				cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
			)
		}
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	// gRPC
	cfg.GRPC.Host = getEnvDefault("GRPC_HOST", "127.0.0.1")
	cfg.GRPC.Port = getEnvDefault("GRPC_PORT", "50051")

	// User service
	cfg.UserService.URL = strings.TrimRight(getEnvDefault("USER_SERVICE_URL", "http://localhost:8000"), "/")
	cfg.UserService.Timeout = getEnvDuration("USER_SERVICE_TIMEOUT", 3*time.Second)
	cfg.UserService.RPS = getEnvFloat("USER_SERVICE_RPS", 50)
	cfg.UserService.Burst = getEnvInt("USER_SERVICE_BURST", 20)
	cfg.UserService.CacheTTL = getEnvDuration("PROFILE_CACHE_TTL", 5*time.Minute)

	// Matching
	cfg.Matching.Policy = strings.ToLower(getEnvDefault("MATCHING_POLICY", "orientation"))
	cfg.Matching.PolicyFile = getEnvDefault("MATCHING_POLICY_FILE", "")
	cfg.Matching.MinPoolSize = getEnvInt("MATCHING_MIN_POOL_SIZE", 6)
	cfg.Matching.RecentWindow = getEnvInt("MATCHING_RECENT_WINDOW", 10)
	cfg.Matching.RecentOnly = getEnvBool("MATCHING_RECENT_ONLY", true)
	cfg.Matching.AllowRecycling = getEnvBool("MATCHING_ALLOW_RECYCLING", true)
	cfg.Matching.InterestWorkers = getEnvInt("MATCHING_INTEREST_WORKERS", 8)

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if n, err := strconv.Atoi(getEnvDefault(k, "")); err == nil {
		return n
	}
	return def
}

func getEnvFloat(k string, def float64) float64 {
	if f, err := strconv.ParseFloat(getEnvDefault(k, ""), 64); err == nil {
		return f
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnvDefault(k, "")); err == nil {
		return d
	}
	return def
}

func getEnvBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return isTruthy(v)
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
