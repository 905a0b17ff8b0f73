package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the monitor configuration, read from YAML and then overridden by
// MONITOR_* environment variables.
type Config struct {
	DatabasePath    string        `yaml:"database_path"`
	ListenAddr      string        `yaml:"listen_addr"`      // ex: ":8080"
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // ex: 5s
	RequestTimeout  time.Duration `yaml:"request_timeout"`  // per-request deadline for the HTTP API

	LogLevel  string `yaml:"log_level"`  // "debug" | "info" | "warn" | "error"
	PrettyLog bool   `yaml:"pretty_log"` // true => zap dev (color), false => zap prod (JSON)

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig configures the optional latest-status cache. An empty Addr
// disables the cache.
type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"` // total time to retry connecting
	RetryInterval  time.Duration `yaml:"retry_interval"`  // initial wait between retries, grows exponentially
	MaxWait        time.Duration `yaml:"max_wait"`        // cap on the wait between retries
	PingTimeout    time.Duration `yaml:"ping_timeout"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		DatabasePath:    defaultDatabasePath(),
		ListenAddr:      ":8080",
		ShutdownTimeout: 5 * time.Second,
		RequestTimeout:  5 * time.Second,
		LogLevel:        "info",
		PrettyLog:       true,
		Redis: RedisConfig{
			CacheTTL:       5 * time.Minute,
			ConnectTimeout: 30 * time.Second,
			RetryInterval:  2 * time.Second,
			MaxWait:        10 * time.Second,
			PingTimeout:    5 * time.Second,
		},
	}
}

// Load reads configuration from a YAML file. A missing file (or an empty
// path) falls back to defaults. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		case len(data) > 0:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at startup.
func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must be set")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must be set")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be > 0, got %v", c.ShutdownTimeout)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0, got %v", c.RequestTimeout)
	}
	if c.Redis.Enabled() && c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("redis.cache_ttl must be > 0, got %v", c.Redis.CacheTTL)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.DatabasePath = getenv("MONITOR_DATABASE_PATH", cfg.DatabasePath)
	cfg.ListenAddr = getenv("MONITOR_LISTEN_ADDR", cfg.ListenAddr)
	cfg.ShutdownTimeout = mustDuration("MONITOR_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.RequestTimeout = mustDuration("MONITOR_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.LogLevel = getenv("MONITOR_LOG_LEVEL", cfg.LogLevel)
	cfg.PrettyLog = mustBool("MONITOR_PRETTY_LOG", cfg.PrettyLog)

	cfg.Redis.Addr = getenv("MONITOR_REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Username = getenv("MONITOR_REDIS_USERNAME", cfg.Redis.Username)
	cfg.Redis.Password = getenv("MONITOR_REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getenvInt("MONITOR_REDIS_DB", cfg.Redis.DB)
	cfg.Redis.CacheTTL = mustDuration("MONITOR_REDIS_CACHE_TTL", cfg.Redis.CacheTTL)
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".monitor", "monitor.db")
	}
	return filepath.Join(home, ".monitor", "monitor.db")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
