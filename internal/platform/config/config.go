package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvDevelopment is the default environment name.
	EnvDevelopment = "development"
	// EnvProduction enables release mode and strict secret checks.
	EnvProduction = "production"

	// DevSecretKey is only acceptable outside production.
	DevSecretKey = "insecure-secret-key-for-dev"

	minSecretLength = 32
)

var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Config holds application configuration. It is built once at startup by
// LoadConfig and passed by pointer to every component; it is never mutated
// afterwards.
type Config struct {
	ProjectName  string
	APIV1Str     string
	Port         string
	Environment  string
	Debug        bool
	IsProduction bool

	DatabaseURL   string
	EnableDBCheck bool

	// Token signing
	SecretKey                  string
	Algorithm                  string
	JWTIssuer                  string
	AccessTokenExpiry          time.Duration
	RefreshTokenExpiryDuration time.Duration
	SessionSweepInterval       time.Duration

	LoginRateLimit     string
	BackendCORSOrigins []string
	MaxUploadBytes     int64

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// GeminiAPIKeys holds the non-empty GEMINI_API_KEY_1..5 values in order.
	GeminiAPIKeys []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
// The returned config has been validated; a misconfigured signing secret is an error here
// rather than on the first request.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PROJECT_NAME", "AI Content Writer")
	v.SetDefault("API_V1_STR", "/api/v1")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", EnvDevelopment)
	v.SetDefault("DEBUG", true)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("SECRET_KEY", DevSecretKey)
	v.SetDefault("ALGORITHM", "HS256")
	v.SetDefault("JWT_ISSUER", "ai-content-writer")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "1h")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("BACKEND_CORS_ORIGINS", "")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	for i := 1; i <= 5; i++ {
		v.SetDefault(fmt.Sprintf("GEMINI_API_KEY_%d", i), "")
	}
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ProjectName:        v.GetString("PROJECT_NAME"),
		APIV1Str:           strings.TrimRight(v.GetString("API_V1_STR"), "/"),
		Port:               v.GetString("PORT"),
		Environment:        strings.ToLower(v.GetString("ENVIRONMENT")),
		Debug:              v.GetBool("DEBUG"),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		SecretKey:          v.GetString("SECRET_KEY"),
		Algorithm:          strings.ToUpper(v.GetString("ALGORITHM")),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		LoginRateLimit:     v.GetString("LOGIN_RATE_LIMIT"),
		MaxUploadBytes:     v.GetInt64("MAX_UPLOAD_BYTES"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
	}
	cfg.IsProduction = cfg.Environment == EnvProduction

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.AccessTokenExpiry = time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute

	refreshStr := v.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRY_DURATION %q: %w", refreshStr, err)
	}
	cfg.RefreshTokenExpiryDuration = refresh

	sweepStr := v.GetString("SESSION_SWEEP_INTERVAL")
	sweep, err := time.ParseDuration(sweepStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL %q: %w", sweepStr, err)
	}
	cfg.SessionSweepInterval = sweep

	origins, err := ParseCORSOrigins(v.GetString("BACKEND_CORS_ORIGINS"))
	if err != nil {
		return nil, err
	}
	cfg.BackendCORSOrigins = origins

	for i := 1; i <= 5; i++ {
		if key := v.GetString(fmt.Sprintf("GEMINI_API_KEY_%d", i)); key != "" {
			cfg.GeminiAPIKeys = append(cfg.GeminiAPIKeys, key)
		}
	}

	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}
	if len(cfg.GeminiAPIKeys) == 0 {
		log.Println("Warning: no GEMINI_API_KEY_* set. Image analysis will return mock data.")
	}

	return cfg, nil
}

// ParseCORSOrigins accepts either a comma separated list or a JSON array of origins.
func ParseCORSOrigins(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var origins []string
		if err := json.Unmarshal([]byte(raw), &origins); err != nil {
			return nil, fmt.Errorf("invalid BACKEND_CORS_ORIGINS: %w", err)
		}
		return origins, nil
	}

	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins, nil
}

// Validate reports configuration that would make the server unsafe or unusable.
func (c *Config) Validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY must be set"))
	} else {
		if c.IsProduction && c.SecretKey == DevSecretKey {
			errs = append(errs, errors.New("SECRET_KEY must be changed from the development default in production"))
		}
		if c.Environment != EnvDevelopment && len(c.SecretKey) < minSecretLength {
			errs = append(errs, fmt.Errorf("SECRET_KEY must be at least %d bytes outside development", minSecretLength))
		}
	}
	if !supportedAlgorithms[c.Algorithm] {
		errs = append(errs, fmt.Errorf("ALGORITHM %q is not supported (use HS256, HS384 or HS512)", c.Algorithm))
	}
	if c.AccessTokenExpiry <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.RefreshTokenExpiryDuration <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRY_DURATION must be positive"))
	}
	if c.SessionSweepInterval <= 0 {
		errs = append(errs, errors.New("SESSION_SWEEP_INTERVAL must be positive"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("PGSQL_URL must be set"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}

	return errors.Join(errs...)
}

// GoogleOAuthEnabled reports whether Google sign-in is configured.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
