package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// APIKey is the shared secret expected in the X-API-Key header on every
	// non-public route.
	APIKey string

	// OTPExpiryDuration is the validity window applied to both registration
	// and password-reset OTPs.
	OTPExpiryDuration time.Duration

	GoogleClientID string

	// SMTP transport for OTP delivery
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Profile asset storage
	UploadDir      string
	UploadBasePath string
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
	viper.SetDefault("JWT_ISSUER", "primex-backend")
	viper.SetDefault("API_KEY", "")
	viper.SetDefault("OTP_EXPIRY_DURATION", "10m")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("UPLOAD_BASE_PATH", "/api/uploads")

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
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.APIKey = viper.GetString("API_KEY")
	if cfg.APIKey == "" {
		log.Println("Warning: API_KEY not set. All keyed routes will reject requests.")
	}

	otpExpiryStr := viper.GetString("OTP_EXPIRY_DURATION")
	otpExpiryDuration, err := time.ParseDuration(otpExpiryStr)
	if err != nil {
		otpExpiryDuration = 10 * time.Minute
		log.Printf("Warning: Invalid value for OTP_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", otpExpiryStr, otpExpiryDuration.String())
	}
	cfg.OTPExpiryDuration = otpExpiryDuration

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUser = viper.GetString("SMTP_USER")
	cfg.SMTPPass = viper.GetString("SMTP_PASS")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")
	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		log.Println("Warning: SMTP credentials not set. OTP emails will fail to send.")
	}

	cfg.UploadDir = viper.GetString("UPLOAD_DIR")
	cfg.UploadBasePath = viper.GetString("UPLOAD_BASE_PATH")

	return cfg, nil
}
