package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
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
	DBTxTimeout    time.Duration

	JWTSecret string
	JWTIssuer string

	// BaseCurrency is used for balances of users without an investor account row.
	BaseCurrency            string
	AllocationSweepSchedule string

	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DB_TX_TIMEOUT", "30s")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "ipo-ledger")
	v.SetDefault("BASE_CURRENCY", "USD")
	v.SetDefault("ALLOCATION_SWEEP_SCHEDULE", "@hourly")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")

	// Real environment variables override .env values, which override the defaults above.
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	txTimeoutStr := v.GetString("DB_TX_TIMEOUT")
	txTimeout, err := time.ParseDuration(txTimeoutStr)
	if err != nil || txTimeout <= 0 {
		txTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for DB_TX_TIMEOUT ('%s'). Defaulting to %s.\n", txTimeoutStr, txTimeout)
	}
	cfg.DBTxTimeout = txTimeout

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.BaseCurrency = strings.ToUpper(strings.TrimSpace(v.GetString("BASE_CURRENCY")))
	if !domain.IsValidCurrencyCode(cfg.BaseCurrency) {
		log.Printf("Warning: Invalid BASE_CURRENCY ('%s'). Defaulting to USD.\n", cfg.BaseCurrency)
		cfg.BaseCurrency = "USD"
	}

	cfg.AllocationSweepSchedule = v.GetString("ALLOCATION_SWEEP_SCHEDULE")
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg
}
