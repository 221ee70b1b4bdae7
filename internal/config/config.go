package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/focus/internal/timer"
	"gopkg.in/yaml.v3"
)

// StoreBackend selects where timer state is persisted.
type StoreBackend string

const (
	StoreSQLite StoreBackend = "sqlite"
	StoreRedis  StoreBackend = "redis"
)

// Config holds all runtime configuration.
type Config struct {
	DBPath   string       `yaml:"db_path"`
	Store    StoreBackend `yaml:"store"`
	Redis    RedisConfig  `yaml:"redis"`
	LogLevel string       `yaml:"log_level"`
	LogFile  string       `yaml:"log_file"`
	// Presets are the minute values offered by the dashboard number keys.
	Presets []int `yaml:"presets"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// DefaultConfig returns a Config with sensible defaults rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		DBPath:   filepath.Join(home, ".focus", "focus.db"),
		Store:    StoreSQLite,
		Redis:    RedisConfig{Addr: "localhost:6379", Prefix: "focus:"},
		LogLevel: "warn",
		Presets:  []int{25, 15, 5},
	}
}

// DefaultPath returns the config file location under home.
func DefaultPath(home string) string {
	return filepath.Join(home, ".focus", "config.yaml")
}

// Load builds the configuration: defaults, then the YAML file at path (a
// missing file is fine), then FOCUS_* environment variables.
func Load(path, home string) (Config, error) {
	cfg := DefaultConfig(home)

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FOCUS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FOCUS_STORE"); v != "" {
		cfg.Store = StoreBackend(strings.ToLower(v))
	}
	if v := os.Getenv("FOCUS_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("FOCUS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("FOCUS_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("FOCUS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FOCUS_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("FOCUS_PRESETS"); v != "" {
		if presets, err := ParsePresets(v); err == nil {
			cfg.Presets = presets
		}
	}
}

// Validate rejects configurations the program cannot run with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("store %q requires redis.addr", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q (want %q or %q)", c.Store, StoreSQLite, StoreRedis)
	}
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if len(c.Presets) > 9 {
		return fmt.Errorf("at most 9 presets are supported, got %d", len(c.Presets))
	}
	for _, p := range c.Presets {
		if p <= 0 {
			return fmt.Errorf("preset %d: minutes must be positive", p)
		}
		if p > timer.MaxPresetMinutes {
			return fmt.Errorf("preset %d: at most %d minutes", p, timer.MaxPresetMinutes)
		}
	}
	return nil
}

// ParsePresets parses a comma-separated list of positive minute values.
func ParsePresets(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid preset %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
