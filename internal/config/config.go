package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AuthSession = "session"
	AuthJWT     = "jwt"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	MongoURI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017/serenify"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:""`
	RedisURI      string `envconfig:"REDIS_URI" default:"redis://localhost:6379/0"`

	AuthStrategy string        `envconfig:"AUTH_STRATEGY" default:"session"`
	JWTSecret    string        `envconfig:"JWT_SECRET" default:""`
	JWTIssuer    string        `envconfig:"JWT_ISSUER" default:"serenify"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"168h"`

	// CORS: ALLOWED_ORIGINS is comma separated; falls back to FRONTEND_URL.
	AllowedOriginsRaw string   `envconfig:"ALLOWED_ORIGINS" default:""`
	FrontendURL       string   `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
	AllowedOrigins    []string `ignored:"true"`

	TrustProxy    bool          `envconfig:"TRUST_PROXY" default:"false"`
	TrendCacheTTL time.Duration `envconfig:"TREND_CACHE_TTL" default:"5m"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.AuthStrategy = strings.ToLower(strings.TrimSpace(cfg.AuthStrategy))

	cfg.AllowedOrigins = parseOrigins(cfg.AllowedOriginsRaw)
	if len(cfg.AllowedOrigins) == 0 {
		if u := strings.TrimSpace(cfg.FrontendURL); u != "" {
			cfg.AllowedOrigins = []string{u}
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = databaseFromURI(cfg.MongoURI)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	switch c.AuthStrategy {
	case AuthSession:
	case AuthJWT:
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters when AUTH_STRATEGY=jwt")
		}
	default:
		return fmt.Errorf("unsupported AUTH_STRATEGY: %q", c.AuthStrategy)
	}
	if c.TrendCacheTTL < 0 {
		return fmt.Errorf("TREND_CACHE_TTL must not be negative")
	}
	return nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" && !containsOrigin(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// databaseFromURI extracts the path segment of mongodb://host/db?opts, defaulting to "serenify".
func databaseFromURI(uri string) string {
	const fallback = "serenify"
	rest := uri
	if i := strings.Index(rest, "://"); i != -1 {
		rest = rest[i+3:]
	}
	i := strings.Index(rest, "/")
	if i == -1 {
		return fallback
	}
	name := strings.SplitN(rest[i+1:], "?", 2)[0]
	if name == "" {
		return fallback
	}
	return name
}
