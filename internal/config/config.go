// Package config loads runtime configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"8080"`

	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisAddr   string `env:"REDIS_ADDR"`

	JWTSecret        string        `env:"JWT_SECRET,required"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h"`
	RefreshTokenTTL  time.Duration `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"720h"`

	FrontendURL  string `env:"FRONTEND_URL" envDefault:"http://localhost:3001"`
	PublicURL    string `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	CookieSecure bool   `env:"COOKIE_SECURE"`

	GoogleClientID       string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `env:"GOOGLE_CLIENT_SECRET"`
	FacebookClientID     string `env:"FACEBOOK_CLIENT_ID"`
	FacebookClientSecret string `env:"FACEBOOK_CLIENT_SECRET"`
	DiscordClientID      string `env:"DISCORD_CLIENT_ID"`
	DiscordClientSecret  string `env:"DISCORD_CLIENT_SECRET"`

	PlanCacheTTL time.Duration `env:"PLAN_CACHE_TTL" envDefault:"5m"`
}

// Load reads .env if present, then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return env.ParseAs[Config]()
}

// RefreshSecret falls back to the access secret when no dedicated
// refresh secret is configured.
func (c Config) RefreshSecret() string {
	if c.JWTRefreshSecret != "" {
		return c.JWTRefreshSecret
	}
	return c.JWTSecret
}

func (c Config) Production() bool {
	return c.Env == "production"
}
