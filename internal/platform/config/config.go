package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// LoginRateLimit is a ulule/limiter formatted rate ("10-M" = 10 per minute)
	// applied to the public login endpoint.
	LoginRateLimit string
	// AccrualHour is the local hour of day at which the daily sweep runs
	// (penalty accrual), matching the association's 8h reminder schedule.
	AccrualHour int
	// NotifySweepInterval is how often the deferred loan-notification sweep runs.
	NotifySweepInterval time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "unit-solidarite")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("ACCRUAL_HOUR", 8)
	viper.SetDefault("NOTIFY_SWEEP_INTERVAL", "1m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.AccrualHour = viper.GetInt("ACCRUAL_HOUR")
	if cfg.AccrualHour < 0 || cfg.AccrualHour > 23 {
		log.Printf("Warning: ACCRUAL_HOUR %d out of range. Defaulting to 8.\n", cfg.AccrualHour)
		cfg.AccrualHour = 8
	}

	sweepStr := viper.GetString("NOTIFY_SWEEP_INTERVAL")
	sweepInterval, err := time.ParseDuration(sweepStr)
	if err != nil || sweepInterval <= 0 {
		sweepInterval = time.Minute
		log.Printf("Warning: Invalid value for NOTIFY_SWEEP_INTERVAL ('%s'). Defaulting to %s.\n", sweepStr, sweepInterval.String())
	}
	cfg.NotifySweepInterval = sweepInterval

	return cfg, nil
}
