package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/ptalk")

	cfg := Load()

	assert.Equal(t, ENV_DEV, cfg.Env)
	assert.Equal(t, HTTP_ADDRESS, cfg.HTTPAddress)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, filepath.Join("/srv/ptalk", "resources"), cfg.ResourcesDirPath)
	assert.True(t, cfg.UseMockStore())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PTALK_ENV", "PROD")
	t.Setenv("PTALK_HTTP_ADDRESS", ":9090")
	t.Setenv("PTALK_REDIS_DB", "3")
	t.Setenv("PTALK_ACCESS_TOKEN_TTL", "15m")
	t.Setenv("PTALK_RESOURCES_DIR", "/tmp/fixtures")

	cfg := Load()

	assert.Equal(t, ENV_PROD, cfg.Env)
	assert.False(t, cfg.UseMockStore())
	assert.Equal(t, ":9090", cfg.HTTPAddress)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, "/tmp/fixtures", cfg.ResourcesDirPath)
}

func TestLoadClient(t *testing.T) {
	t.Setenv("PTALK_API_URL", "https://api.ptalk.example/")
	t.Setenv("PTALK_TOKEN", "tok")
	t.Setenv("PTALK_OFFLINE", "true")

	cfg := LoadClient()

	assert.Equal(t, "https://api.ptalk.example", cfg.APIBaseURL)
	assert.Equal(t, "tok", cfg.Token)
	assert.True(t, cfg.Offline)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"dev keeps the default secret", Config{Env: ENV_DEV, JWTSecret: JWT_SECRET}, false},
		{"demo keeps the default secret", Config{Env: ENV_DEMO, JWTSecret: JWT_SECRET}, false},
		{"prod with default secret", Config{Env: ENV_PROD, JWTSecret: JWT_SECRET}, true},
		{"prod with empty secret", Config{Env: ENV_PROD, JWTSecret: "  "}, true},
		{"prod with own secret", Config{Env: ENV_PROD, JWTSecret: "s3cr3t-from-vault"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsecureJWTSecret)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad_ProdWithoutSecretFailsValidation(t *testing.T) {
	t.Setenv("PTALK_ENV", "prod")

	cfg := Load()

	assert.Equal(t, JWT_SECRET, cfg.JWTSecret)
	assert.ErrorIs(t, cfg.Validate(), ErrInsecureJWTSecret)
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("PTALK_TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2,,")

	cfg := Load()

	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
}
