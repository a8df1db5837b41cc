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
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// ServiceAPIKeyHash is the bcrypt hash collaborator services (sales,
	// orders, alterations) authenticate against via the x-api-key header.
	ServiceAPIKeyHash string

	// KafkaBrokers is empty when event publishing is disabled.
	KafkaBrokers []string

	PostHogAPIKey string

	// RateLimit is a ulule/limiter formatted rate for money-mutating
	// endpoints, e.g. "10-M" for ten requests per minute per IP.
	RateLimit string

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
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "shop-ledger-app")
	viper.SetDefault("SERVICE_API_KEY_HASH", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("RATE_LIMIT", "10-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// Environment variables override defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
		// Consider returning an error depending on requirements
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	// Load JWT Secret
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1 // Default to 1 hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	// Load JWT Issuer
	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "shop-ledger-app" // Default JWT issuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	serviceAPIKeyHash := viper.GetString("SERVICE_API_KEY_HASH")
	if serviceAPIKeyHash == "" {
		log.Println("Warning: SERVICE_API_KEY_HASH not set. Collaborator service authentication is disabled.")
	}

	// Comma-separated broker list; empty disables event publishing entirely.
	kafkaBrokersStr := viper.GetString("KAFKA_BROKERS")
	var kafkaBrokers []string
	if kafkaBrokersStr != "" {
		for _, b := range strings.Split(kafkaBrokersStr, ",") {
			if trimmed := strings.TrimSpace(b); trimmed != "" {
				kafkaBrokers = append(kafkaBrokers, trimmed)
			}
		}
	}
	if len(kafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. Ledger events will not be published.")
	}

	rateLimit := viper.GetString("RATE_LIMIT")
	if rateLimit == "" {
		rateLimit = "10-M"
		log.Printf("Warning: RATE_LIMIT not set. Defaulting to %s.\n", rateLimit)
	}

	corsOriginsStr := viper.GetString("CORS_ALLOWED_ORIGINS")
	corsOrigins := []string{"*"}
	if corsOriginsStr != "" && corsOriginsStr != "*" {
		corsOrigins = corsOrigins[:0]
		for _, o := range strings.Split(corsOriginsStr, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				corsOrigins = append(corsOrigins, trimmed)
			}
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.ServiceAPIKeyHash = serviceAPIKeyHash
	cfg.KafkaBrokers = kafkaBrokers
	cfg.PostHogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.RateLimit = rateLimit
	cfg.CORSAllowedOrigins = corsOrigins

	return cfg, nil
}
