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
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Staff login lockout policy
	MaxLoginAttempts int
	LockoutDuration  time.Duration

	// Daily stock-expiry sweep
	SweepHour     int // local hour of day (0-23) the sweep fires
	SweepTimezone string

	// CORSAllowedOrigins is the explicit allowlist used in production. In
	// non-production all origins are allowed.
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "concession-backend")
	viper.SetDefault("MAX_LOGIN_ATTEMPTS", 5)
	viper.SetDefault("LOCKOUT_DURATION", "15m")
	viper.SetDefault("SWEEP_HOUR", 2)
	viper.SetDefault("SWEEP_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

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

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "concession-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	lockoutStr := viper.GetString("LOCKOUT_DURATION")
	lockoutDuration, err := time.ParseDuration(lockoutStr)
	if err != nil {
		lockoutDuration = 15 * time.Minute
		if lockoutStr != "" {
			log.Printf("Warning: Invalid value for LOCKOUT_DURATION ('%s'). Defaulting to %s.\n", lockoutStr, lockoutDuration.String())
		}
	}

	maxAttempts := viper.GetInt("MAX_LOGIN_ATTEMPTS")
	if maxAttempts <= 0 {
		maxAttempts = 5
		log.Printf("Warning: Invalid MAX_LOGIN_ATTEMPTS. Defaulting to %d.\n", maxAttempts)
	}

	sweepHour := viper.GetInt("SWEEP_HOUR")
	if sweepHour < 0 || sweepHour > 23 {
		sweepHour = 2
		log.Printf("Warning: SWEEP_HOUR out of range. Defaulting to %d.\n", sweepHour)
	}

	sweepTimezone := viper.GetString("SWEEP_TIMEZONE")
	if _, err := time.LoadLocation(sweepTimezone); err != nil {
		log.Printf("Warning: Invalid SWEEP_TIMEZONE ('%s'). Defaulting to UTC.\n", sweepTimezone)
		sweepTimezone = "UTC"
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.MaxLoginAttempts = maxAttempts
	cfg.LockoutDuration = lockoutDuration
	cfg.SweepHour = sweepHour
	cfg.SweepTimezone = sweepTimezone

	if raw := viper.GetString("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
			}
		}
	}

	return cfg, nil
}
