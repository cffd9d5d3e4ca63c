package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/schedview/internal/cache"
	"github.com/ziadkadry99/schedview/internal/tables"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".schedview.yml"

// EnvPrefix prefixes environment overrides. A double underscore descends
// into a section: SCHEDVIEW_CACHE__BACKEND sets cache.backend.
const EnvPrefix = "SCHEDVIEW_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SCHEDVIEW_*). A .env file next to the
// config file is read first; it never replaces variables already set.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if err := godotenv.Load(filepath.Join(filepath.Dir(path), ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps SCHEDVIEW_SERVER__ALLOW_ALL to server.allow_all.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLoadModes = map[string]bool{
	tables.ModeSequential: true,
	tables.ModeParallel:   true,
}

var validBackends = map[string]bool{
	cache.BackendSQLite: true,
	cache.BackendRedis:  true,
	cache.BackendMemory: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("source is required")
	}

	if c.Language == "" {
		return fmt.Errorf("language is required")
	}

	for name, v := range map[string]string{
		"schedule_file": c.ScheduleFile,
		"teachers_file": c.TeachersFile,
		"days_map_file": c.DaysMapFile,
	} {
		if v == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if !validLoadModes[c.LoadMode] {
		return fmt.Errorf("invalid load_mode %q: must be sequential or parallel", c.LoadMode)
	}

	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("fetch_timeout_seconds must be non-negative")
	}

	if c.ClockIntervalMS <= 0 {
		return fmt.Errorf("clock_interval_ms must be positive")
	}

	if !validBackends[c.Cache.Backend] {
		return fmt.Errorf("invalid cache.backend %q: must be one of sqlite, redis, memory", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for the redis backend")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	if c.Site.OutputDir == "" {
		return fmt.Errorf("site.output_dir is required")
	}

	return nil
}
