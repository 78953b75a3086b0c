package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// Redis backs the optional account cache. An empty address disables it.
	RedisAddress    string
	RedisPassword   string
	RedisDB         int
	AccountCacheTTL time.Duration

	// PostingTimeout bounds every producer request hitting the ledger.
	PostingTimeout time.Duration
	// RateLimit uses the ulule/limiter format, e.g. "300-M".
	RateLimit string
	// GLBestEffortDefault applies to producer calls that do not set BestEffort.
	GLBestEffortDefault bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ACCOUNT_CACHE_TTL", "10m")
	viper.SetDefault("POSTING_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("GL_BEST_EFFORT_DEFAULT", false)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.RedisAddress = viper.GetString("REDIS_ADDRESS")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.AccountCacheTTL = parseDuration("ACCOUNT_CACHE_TTL", 10*time.Minute)

	cfg.PostingTimeout = parseDuration("POSTING_TIMEOUT", 10*time.Second)
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.GLBestEffortDefault = viper.GetBool("GL_BEST_EFFORT_DEFAULT")

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
