package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FOCUS_DB", "FOCUS_STORE", "FOCUS_REDIS_ADDR", "FOCUS_REDIS_PASSWORD",
		"FOCUS_REDIS_DB", "FOCUS_LOG_LEVEL", "FOCUS_LOG_FILE", "FOCUS_PRESETS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	cfg, err := Load(DefaultPath(home), home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".focus", "focus.db"), cfg.DBPath)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []int{25, 15, 5}, cfg.Presets)
}

func TestLoad_ReadsYAML(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /tmp/other.db
store: redis
redis:
  addr: redis.local:6380
  db: 2
log_level: debug
presets: [50, 10]
`), 0o644))

	cfg, err := Load(path, home)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "redis.local:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "focus:", cfg.Redis.Prefix, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []int{50, 10}, cfg.Presets)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))

	t.Setenv("FOCUS_LOG_LEVEL", "error")
	t.Setenv("FOCUS_DB", "/var/tmp/focus.db")
	t.Setenv("FOCUS_PRESETS", "45, 15")
	t.Setenv("FOCUS_REDIS_DB", "not-a-number")

	cfg, err := Load(path, home)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/var/tmp/focus.db", cfg.DBPath)
	assert.Equal(t, []int{45, 15}, cfg.Presets)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets: [oops"), 0o644))

	_, err := Load(path, home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestValidate(t *testing.T) {
	base := DefaultConfig("/home/u")

	bad := base
	bad.Store = "etcd"
	assert.ErrorContains(t, bad.Validate(), "unknown store")

	bad = base
	bad.Store = StoreRedis
	bad.Redis.Addr = ""
	assert.ErrorContains(t, bad.Validate(), "requires redis.addr")

	bad = base
	bad.Presets = []int{25, 0}
	assert.ErrorContains(t, bad.Validate(), "minutes must be positive")

	bad = base
	bad.Presets = []int{25, 200000000}
	assert.ErrorContains(t, bad.Validate(), "at most 1440 minutes")

	bad = base
	bad.Presets = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.ErrorContains(t, bad.Validate(), "at most 9")

	assert.NoError(t, base.Validate())
}

func TestParsePresets(t *testing.T) {
	got, err := ParsePresets("25,15, 5,")
	require.NoError(t, err)
	assert.Equal(t, []int{25, 15, 5}, got)

	_, err = ParsePresets("25,-1")
	assert.Error(t, err)
}
