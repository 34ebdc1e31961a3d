// Package config loads the process configuration once at startup from
// environment variables (a .env file is overlaid by the caller before load).
package config

import (
	"fmt"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string          `env:"GO_ENV" env-default:"development"`
	Server    ServerConfig    `env-prefix:"SERVER_"`
	DB        DBConfig        `env-prefix:"DB_"`
	Redis     RedisConfig     `env-prefix:"REDIS_"`
	Auth      AuthConfig      ``
	Cookie    CookieConfig    `env-prefix:"COOKIE_"`
	CORS      CORSConfig      `env-prefix:"CORS_"`
	RateLimit RateLimitConfig `env-prefix:"RATE_LIMIT_"`
}

type ServerConfig struct {
	Host string `env:"HOST" env-default:"0.0.0.0"`
	Port string `env:"PORT" env-default:"8080"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type DBConfig struct {
	DSN string `env:"DSN"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" env-default:"0"`
}

// AuthConfig holds token secrets and lifetimes. Each token class is signed
// with its own secret so a leaked access token cannot mint new pairs.
type AuthConfig struct {
	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL" env-default:"168h"`
}

type CookieConfig struct {
	Secure   bool   `env:"SECURE" env-default:"false"`
	SameSite string `env:"SAMESITE" env-default:"lax"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}

type RateLimitConfig struct {
	Requests int           `env:"REQUESTS" env-default:"100"`
	Window   time.Duration `env:"WINDOW" env-default:"1m"`
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad is Load with a panic on failure, for use in main.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate enforces the settings that have no safe fallback. Token secrets
// and the database DSN are required in production; development falls back to
// fixed local values so the server can boot without a .env file. Cookies are
// always Secure in production regardless of COOKIE_SECURE.
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.Auth.AccessTokenSecret == "" || c.Auth.RefreshTokenSecret == "" {
			return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set in production")
		}
		if c.DB.DSN == "" {
			return fmt.Errorf("DB_DSN must be set in production")
		}
		c.Cookie.Secure = true
	}

	if c.Auth.AccessTokenSecret == "" {
		c.Auth.AccessTokenSecret = "dev-access-token-secret"
	}
	if c.Auth.RefreshTokenSecret == "" {
		c.Auth.RefreshTokenSecret = "dev-refresh-token-secret"
	}

	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}

	switch c.Cookie.SameSite {
	case "lax", "strict", "none":
	default:
		return fmt.Errorf("COOKIE_SAMESITE must be one of lax, strict, none; got %q", c.Cookie.SameSite)
	}

	return nil
}
