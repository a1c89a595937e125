package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	return &Config{
		Environment:                EnvDevelopment,
		DatabaseURL:                "postgres://localhost/acw",
		SecretKey:                  DevSecretKey,
		Algorithm:                  "HS256",
		AccessTokenExpiry:          30 * time.Minute,
		RefreshTokenExpiryDuration: 7 * 24 * time.Hour,
		SessionSweepInterval:       time.Hour,
		MaxUploadBytes:             1 << 20,
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/acw")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/api/v1", cfg.APIV1Str)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.False(t, cfg.IsProduction)
	assert.Equal(t, "HS256", cfg.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.False(t, cfg.GoogleOAuthEnabled())
	assert.Empty(t, cfg.GeminiAPIKeys)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://db/acw")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("SECRET_KEY", strongSecret)
	t.Setenv("ALGORITHM", "hs512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_EXPIRY_DURATION", "24h")
	t.Setenv("BACKEND_CORS_ORIGINS", `["https://a.example","https://b.example"]`)
	t.Setenv("GEMINI_API_KEY_1", "k1")
	t.Setenv("GEMINI_API_KEY_3", "k3")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "HS512", cfg.Algorithm)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.BackendCORSOrigins)
	assert.Equal(t, []string{"k1", "k3"}, cfg.GeminiAPIKeys)
	assert.True(t, cfg.GoogleOAuthEnabled())
}

func TestLoadConfig_BadDuration(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://db/acw")
	t.Setenv("REFRESH_TOKEN_EXPIRY_DURATION", "a week")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "REFRESH_TOKEN_EXPIRY_DURATION")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid development config", mutate: func(c *Config) {}},
		{name: "empty secret", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: "SECRET_KEY must be set"},
		{
			name: "dev secret in production",
			mutate: func(c *Config) {
				c.Environment, c.IsProduction = EnvProduction, true
			},
			wantErr: "development default",
		},
		{
			name:    "short secret outside development",
			mutate:  func(c *Config) { c.Environment, c.SecretKey = "staging", "short" },
			wantErr: "at least 32 bytes",
		},
		{
			name: "strong secret in production",
			mutate: func(c *Config) {
				c.Environment, c.IsProduction, c.SecretKey = EnvProduction, true, strongSecret
			},
		},
		{name: "unsupported algorithm", mutate: func(c *Config) { c.Algorithm = "RS256" }, wantErr: "not supported"},
		{name: "zero access ttl", mutate: func(c *Config) { c.AccessTokenExpiry = 0 }, wantErr: "ACCESS_TOKEN_EXPIRE_MINUTES"},
		{name: "negative refresh ttl", mutate: func(c *Config) { c.RefreshTokenExpiryDuration = -time.Hour }, wantErr: "REFRESH_TOKEN_EXPIRY_DURATION"},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: "PGSQL_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseCORSOrigins(t *testing.T) {
	origins, err := ParseCORSOrigins(" http://localhost:3000, https://app.example ,")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example"}, origins)

	origins, err = ParseCORSOrigins("")
	require.NoError(t, err)
	assert.Nil(t, origins)

	_, err = ParseCORSOrigins(`["unterminated"`)
	assert.Error(t, err)
}
