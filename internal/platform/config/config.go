package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends selectable with STORE.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	Store         string

	// JWTSecret enables bearer authentication on /api/v1 when set.
	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	RedisAddr      string // empty disables the report cache
	ReportCacheTTL time.Duration

	MappingFile     string // optional YAML overriding the built-in mapping rules
	SeedFile        string
	MigrationsPath  string
	DefaultCurrency string

	RateLimit          string // ulule formatted, e.g. "100-M"; empty disables limiting
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("STORE", StorePostgres)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "bookkeeping-app")
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REPORT_CACHE_TTL", "10m")
	v.SetDefault("MAPPING_FILE", "")
	v.SetDefault("SEED_FILE", "config/seed.yaml")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DEFAULT_CURRENCY", "PEN")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		Store:           strings.ToLower(v.GetString("STORE")),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		MappingFile:     v.GetString("MAPPING_FILE"),
		SeedFile:        v.GetString("SEED_FILE"),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		DefaultCurrency: strings.ToUpper(v.GetString("DEFAULT_CURRENCY")),
		RateLimit:       v.GetString("RATE_LIMIT"),
	}

	var err error
	if cfg.JWTExpiryDuration, err = parseDuration(v, "JWT_EXPIRY_DURATION"); err != nil {
		return nil, err
	}
	if cfg.ReportCacheTTL, err = parseDuration(v, "REPORT_CACHE_TTL"); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.Store {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreMemory:
		log.Println("Warning: STORE=memory, postings are lost on restart.")
	default:
		return nil, fmt.Errorf("invalid STORE %q: want %s or %s", cfg.Store, StorePostgres, StoreMemory)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET not set. API routes are unauthenticated.")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, v.GetString(key), err)
	}
	return d, nil
}
