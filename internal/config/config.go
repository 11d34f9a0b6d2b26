package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the full process configuration, loaded from config.toml and
// overridable by BJACK_-prefixed environment variables.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	CORS        CORSConfig        `toml:"cors"`
	JWT         JWTConfig         `toml:"jwt"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Invitations InvitationsConfig `toml:"invitations"`
	API         APIConfig         `toml:"api"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type JWTConfig struct {
	Secret          string `toml:"secret"`
	ExpirationHours int    `toml:"expiration_hours"`
}

func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

type RateLimitConfig struct {
	RequestsPerMinute int `toml:"requests_per_minute"`
}

type InvitationsConfig struct {
	DefaultTimeoutSeconds int `toml:"default_timeout_seconds"`
	MaxTimeoutSeconds     int `toml:"max_timeout_seconds"`
}

type APIConfig struct {
	VersionDeprecationMonths int `toml:"version_deprecation_months"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		CORS:   CORSConfig{AllowedOrigins: []string{"*"}},
		JWT:    JWTConfig{Secret: "change-me", ExpirationHours: 24},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Invitations: InvitationsConfig{
			DefaultTimeoutSeconds: 300,
			MaxTimeoutSeconds:     3600,
		},
		API: APIConfig{VersionDeprecationMonths: 6},
	}
}

// Load reads path (if present) over a defaulted Config, loads a local .env
// file (if present) and applies any BJACK_-prefixed environment overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	// godotenv.Load is a no-op (returns an error we ignore) when no .env
	// file exists — local development convenience only.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BJACK_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v, ok := envInt("BJACK_SERVER_PORT"); ok {
		cfg.Server.Port = v
	}
	if v := os.Getenv("BJACK_CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("BJACK_JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v, ok := envInt("BJACK_JWT_EXPIRATION_HOURS"); ok {
		cfg.JWT.ExpirationHours = v
	}
	if v, ok := envInt("BJACK_RATE_LIMIT_REQUESTS_PER_MINUTE"); ok {
		cfg.RateLimit.RequestsPerMinute = v
	}
	if v, ok := envInt("BJACK_INVITATIONS_DEFAULT_TIMEOUT_SECONDS"); ok {
		cfg.Invitations.DefaultTimeoutSeconds = v
	}
	if v, ok := envInt("BJACK_INVITATIONS_MAX_TIMEOUT_SECONDS"); ok {
		cfg.Invitations.MaxTimeoutSeconds = v
	}
	if v, ok := envInt("BJACK_API_VERSION_DEPRECATION_MONTHS"); ok {
		cfg.API.VersionDeprecationMonths = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
