package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	SessionSecret   string
	AuthTokens      string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	RedisAddress    string
	MenuCacheTTL    time.Duration
	FixturesPath    string
}

const (
	defaultRunAddress      = ":8080"
	defaultSessionSecret   = "change-me-in-production"
	defaultAuthTokens      = "hmac"
	defaultTokenTTL        = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultMenuCacheTTL    = 5 * time.Minute
)

// Load parses configuration from .env, environment variables, and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		SessionSecret:   getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		AuthTokens:      getString(lookup, "AUTH_TOKENS", defaultAuthTokens),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		RedisAddress:    getString(lookup, "REDIS_ADDRESS", ""),
		MenuCacheTTL:    getDuration(lookup, "MENU_CACHE_TTL", defaultMenuCacheTTL),
		FixturesPath:    getString(lookup, "FIXTURES_PATH", ""),
	}

	fs := flag.NewFlagSet("servery", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		menuCacheTTLStr    = cfg.MenuCacheTTL.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session tokens")
	fs.StringVar(&cfg.AuthTokens, "auth-tokens", cfg.AuthTokens, "Session token strategy (hmac or jwt)")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Session token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for read-view caching (empty disables the cache)")
	fs.StringVar(&menuCacheTTLStr, "menu-cache-ttl", menuCacheTTLStr, "Lifetime of cached restaurant and menu views")
	fs.StringVar(&cfg.FixturesPath, "fixtures", cfg.FixturesPath, "YAML file with sample data to load on start")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.MenuCacheTTL, err = time.ParseDuration(menuCacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid menu cache ttl: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = string(content)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MenuCacheTTL <= 0 {
		cfg.MenuCacheTTL = defaultMenuCacheTTL
	}

	if cfg.AuthTokens != "hmac" && cfg.AuthTokens != "jwt" {
		return nil, fmt.Errorf("unknown auth token strategy %q", cfg.AuthTokens)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
