package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// Rate limiting; RedisURL empty means an in-process store.
	RedisURL  string
	RateLimit string

	PosthogAPIKey string

	// Document storage
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string
	SignedURLExpiry    time.Duration

	// Reporting
	AdminPageSize      int
	ReportingLocation  *time.Location
	DefaultCurrency    string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_SERVICE_KEY", "")
	viper.SetDefault("SUPABASE_BUCKET", "client-documents")
	viper.SetDefault("SIGNED_URL_EXPIRY", "300s")
	viper.SetDefault("ADMIN_PAGE_SIZE", 25)
	viper.SetDefault("REPORTING_TIMEZONE", "UTC")
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

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
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	cfg.SupabaseURL = strings.TrimRight(viper.GetString("SUPABASE_URL"), "/")
	cfg.SupabaseServiceKey = viper.GetString("SUPABASE_SERVICE_KEY")
	cfg.SupabaseBucket = viper.GetString("SUPABASE_BUCKET")
	if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
		log.Println("Warning: SUPABASE_URL or SUPABASE_SERVICE_KEY not set. Document links will not function.")
	}

	expiryStr := viper.GetString("SIGNED_URL_EXPIRY")
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil || expiry <= 0 {
		expiry = 300 * time.Second
		log.Printf("Warning: Invalid value for SIGNED_URL_EXPIRY ('%s'). Defaulting to %s.\n", expiryStr, expiry)
	}
	cfg.SignedURLExpiry = expiry

	cfg.AdminPageSize = viper.GetInt("ADMIN_PAGE_SIZE")
	if cfg.AdminPageSize <= 0 {
		cfg.AdminPageSize = 25
		log.Printf("Warning: Invalid ADMIN_PAGE_SIZE. Defaulting to %d.\n", cfg.AdminPageSize)
	}

	tz := viper.GetString("REPORTING_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
		log.Printf("Warning: Unknown REPORTING_TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
	}
	cfg.ReportingLocation = loc

	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("DEFAULT_CURRENCY")))
	if len(cfg.DefaultCurrency) != 3 {
		cfg.DefaultCurrency = "USD"
		log.Printf("Warning: Invalid DEFAULT_CURRENCY. Defaulting to %s.\n", cfg.DefaultCurrency)
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
