package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	StoreDriver    string
	Port           string
	IsProduction   bool
	MigrationsPath string

	JWTSecret      string
	JWTIssuer      string
	AllowedOrigins []string
	RateLimit      string // formatted for ulule/limiter, e.g. "300-M"

	// Exchange rates
	FastForexAPIKey  string
	FastForexBaseURL string
	BaseCurrency     string
	RatesCacheTTL    time.Duration

	// Ledger rules
	LedgerLocation     *time.Location // daily transfer windows start at midnight here
	MaxMovementAmount  decimal.Decimal
	DailyTransferLimit decimal.Decimal
	ReversalWindow     time.Duration

	EventsQueueURL  string
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	limits := domain.DefaultLimits()

	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("FASTFOREX_API_KEY", "")
	v.SetDefault("FASTFOREX_BASE_URL", "https://api.fastforex.io")
	v.SetDefault("BASE_CURRENCY", "GTQ")
	v.SetDefault("RATES_CACHE_TTL", "12h")
	v.SetDefault("LEDGER_TIMEZONE", "Local")
	v.SetDefault("MAX_MOVEMENT_AMOUNT", limits.MaxMovementAmount.String())
	v.SetDefault("DAILY_TRANSFER_LIMIT", limits.DailyTransferLimit.String())
	v.SetDefault("REVERSAL_WINDOW", limits.ReversalWindow.String())
	v.SetDefault("EVENTS_QUEUE_URL", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:      v.GetString("PGSQL_URL"),
		StoreDriver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		MigrationsPath:   v.GetString("MIGRATIONS_PATH"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		AllowedOrigins:   splitList(v.GetString("ALLOWED_ORIGINS")),
		RateLimit:        v.GetString("RATE_LIMIT"),
		FastForexAPIKey:  v.GetString("FASTFOREX_API_KEY"),
		FastForexBaseURL: strings.TrimRight(v.GetString("FASTFOREX_BASE_URL"), "/"),
		BaseCurrency:     strings.ToUpper(v.GetString("BASE_CURRENCY")),
		EventsQueueURL:   v.GetString("EVENTS_QUEUE_URL"),
		PosthogAPIKey:    v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:  v.GetString("POSTHOG_ENDPOINT"),
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_DRIVER is %s", StoreDriverPostgres)
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER '%s'", cfg.StoreDriver)
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET is the default insecure key. THIS IS NOT FOR PRODUCTION.")
	}

	if cfg.FastForexAPIKey == "" {
		log.Println("Warning: FASTFOREX_API_KEY not set. Currency conversion will not function.")
	}

	var err error
	if cfg.RatesCacheTTL, err = positiveDuration(v, "RATES_CACHE_TTL"); err != nil {
		return nil, err
	}
	if cfg.ReversalWindow, err = positiveDuration(v, "REVERSAL_WINDOW"); err != nil {
		return nil, err
	}
	if cfg.MaxMovementAmount, err = positiveDecimal(v, "MAX_MOVEMENT_AMOUNT"); err != nil {
		return nil, err
	}
	if cfg.DailyTransferLimit, err = positiveDecimal(v, "DAILY_TRANSFER_LIMIT"); err != nil {
		return nil, err
	}

	cfg.LedgerLocation, err = time.LoadLocation(v.GetString("LEDGER_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE '%s': %w", v.GetString("LEDGER_TIMEZONE"), err)
	}

	return cfg, nil
}

// Limits returns the movement limits with the configured overrides applied.
func (c *Config) Limits() domain.Limits {
	limits := domain.DefaultLimits()
	if c.MaxMovementAmount.IsPositive() {
		limits.MaxMovementAmount = c.MaxMovementAmount
	}
	if c.DailyTransferLimit.IsPositive() {
		limits.DailyTransferLimit = c.DailyTransferLimit
	}
	if c.ReversalWindow > 0 {
		limits.ReversalWindow = c.ReversalWindow
	}
	return limits
}

func positiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid value for %s ('%s'): must be a positive duration", key, raw)
	}
	return d, nil
}

func positiveDecimal(v *viper.Viper, key string) (decimal.Decimal, error) {
	raw := v.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid value for %s ('%s'): must be a positive amount", key, raw)
	}
	return d, nil
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
