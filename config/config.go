package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Server config
const HTTP_ADDRESS = ":8080"
const ENV_DEV = "dev"
const ENV_DEMO = "demo"
const ENV_PROD = "prod"

// ptalkctl defaults
const API_BASE_URL = "http://localhost:8080"

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Auth config
const JWT_SECRET = "ptalk-dev-secret"
const JWT_ISSUER = "ptalk-server"
const ACCESS_TOKEN_TTL_MINUTES = 60
const REFRESH_TOKEN_TTL_HOURS = 24 * 7

// Rate limiting, per client IP
const RATE_LIMIT_PER_SECOND = 10
const RATE_LIMIT_BURST = 20

// Demo data is re-seeded on this schedule when running in demo mode.
const DEMO_RESET_SCHEDULE_MINUTES = 60

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const MOCK_VENUES_RESOURCE = "mock_venues.json"
const MOCK_TAGS_RESOURCE = "mock_tags.json"
const MOCK_COMMENTS_RESOURCE = "mock_comments.json"
const MOCK_MERCHANT_RESOURCE = "mock_merchant.json"

// Config is the runtime configuration, read from PTALK_* environment
// variables on top of the defaults above.
type Config struct {
	Env              string
	HTTPAddress      string
	RedisAddress     string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	RateLimitPerSec  float64
	RateLimitBurst   int
	DemoResetEvery   time.Duration
	ResourcesDirPath string
	// TrustedProxies are peer IPs whose X-Forwarded-For header is believed.
	TrustedProxies []string
}

// ErrInsecureJWTSecret is returned when prod would sign tokens with a known secret.
var ErrInsecureJWTSecret = errors.New("PTALK_JWT_SECRET must be set to a non-default value in prod")

// Validate rejects settings that are only safe outside prod.
func (c Config) Validate() error {
	if c.Env != ENV_PROD {
		return nil
	}
	if secret := strings.TrimSpace(c.JWTSecret); secret == "" || secret == JWT_SECRET {
		return ErrInsecureJWTSecret
	}
	return nil
}

// UseMockStore reports whether the in-memory store should replace Redis.
func (c Config) UseMockStore() bool {
	return c.Env != ENV_PROD
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PTALK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", ENV_DEV)
	v.SetDefault("http_address", HTTP_ADDRESS)
	v.SetDefault("redis_address", REDIS_DB_ADDRESS)
	v.SetDefault("redis_password", REDIS_DB_PASSWORD)
	v.SetDefault("redis_db", REDIS_DB)
	v.SetDefault("jwt_secret", JWT_SECRET)
	v.SetDefault("access_token_ttl", time.Duration(ACCESS_TOKEN_TTL_MINUTES)*time.Minute)
	v.SetDefault("refresh_token_ttl", time.Duration(REFRESH_TOKEN_TTL_HOURS)*time.Hour)
	v.SetDefault("rate_limit_per_second", RATE_LIMIT_PER_SECOND)
	v.SetDefault("rate_limit_burst", RATE_LIMIT_BURST)
	v.SetDefault("demo_reset_interval", time.Duration(DEMO_RESET_SCHEDULE_MINUTES)*time.Minute)
	v.SetDefault("resources_dir", filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX))
	v.SetDefault("trusted_proxies", "")
	return v
}

// Load reads the configuration. PTALK_ENV, PTALK_HTTP_ADDRESS,
// PTALK_REDIS_ADDRESS, PTALK_JWT_SECRET and friends override the defaults.
func Load() Config {
	v := newViper()
	return Config{
		Env:              strings.ToLower(v.GetString("env")),
		HTTPAddress:      v.GetString("http_address"),
		RedisAddress:     v.GetString("redis_address"),
		RedisPassword:    v.GetString("redis_password"),
		RedisDB:          v.GetInt("redis_db"),
		JWTSecret:        v.GetString("jwt_secret"),
		AccessTokenTTL:   v.GetDuration("access_token_ttl"),
		RefreshTokenTTL:  v.GetDuration("refresh_token_ttl"),
		RateLimitPerSec:  v.GetFloat64("rate_limit_per_second"),
		RateLimitBurst:   v.GetInt("rate_limit_burst"),
		DemoResetEvery:   v.GetDuration("demo_reset_interval"),
		ResourcesDirPath: v.GetString("resources_dir"),
		TrustedProxies:   splitList(v.GetString("trusted_proxies")),
	}
}

// splitList reads a comma separated env value.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ClientConfig configures ptalkctl. Offline answers from the bundled
// fixtures instead of a running server.
type ClientConfig struct {
	APIBaseURL       string
	Token            string
	Offline          bool
	ResourcesDirPath string
}

// LoadClient reads PTALK_API_URL, PTALK_TOKEN, PTALK_OFFLINE and PTALK_RESOURCES_DIR.
func LoadClient() ClientConfig {
	v := newViper()
	v.SetDefault("api_url", API_BASE_URL)
	v.SetDefault("offline", false)
	return ClientConfig{
		APIBaseURL:       strings.TrimRight(v.GetString("api_url"), "/"),
		Token:            v.GetString("token"),
		Offline:          v.GetBool("offline"),
		ResourcesDirPath: v.GetString("resources_dir"),
	}
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}
