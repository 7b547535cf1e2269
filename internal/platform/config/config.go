package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/SscSPs/returns_management_app/internal/platform/resilience"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	JWTIssuer      string
	MigrationsPath string // empty means the migrations embedded in the binary

	// RateLimit uses the ulule/limiter format, e.g. "100-M".
	RateLimit          string
	CORSAllowedOrigins []string

	// Feature flags applied to a session when its token carries none.
	DefaultFeatures domain.FeatureFlags

	Store resilience.BreakerConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	breakerDefaults := resilience.DefaultBreakerConfig("pgsql")

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("MIGRATIONS_PATH", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("FEATURE_RECONCILE_PURCHASE_ORDERS", true)
	viper.SetDefault("FEATURE_APPLY_SUPPLIER_BALANCE", true)
	viper.SetDefault("STORE_TIMEOUT", breakerDefaults.CallTimeout.String())
	viper.SetDefault("BREAKER_FAILURE_THRESHOLD", breakerDefaults.FailureThreshold)
	viper.SetDefault("BREAKER_OPEN_TIMEOUT", breakerDefaults.OpenTimeout.String())
	viper.SetDefault("BREAKER_INTERVAL", breakerDefaults.Interval.String())
	viper.SetDefault("BREAKER_MAX_REQUESTS", breakerDefaults.MaxRequests)

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

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.DefaultFeatures = domain.FeatureFlags{
		ReconcilePurchaseOrders: viper.GetBool("FEATURE_RECONCILE_PURCHASE_ORDERS"),
		ApplySupplierBalance:    viper.GetBool("FEATURE_APPLY_SUPPLIER_BALANCE"),
	}

	cfg.Store = breakerDefaults
	cfg.Store.CallTimeout = durationOr("STORE_TIMEOUT", breakerDefaults.CallTimeout)
	cfg.Store.OpenTimeout = durationOr("BREAKER_OPEN_TIMEOUT", breakerDefaults.OpenTimeout)
	cfg.Store.Interval = durationOr("BREAKER_INTERVAL", breakerDefaults.Interval)
	cfg.Store.FailureThreshold = viper.GetUint32("BREAKER_FAILURE_THRESHOLD")
	cfg.Store.MaxRequests = viper.GetUint32("BREAKER_MAX_REQUESTS")

	return cfg, nil
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
