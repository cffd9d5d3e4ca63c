package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/schedview/internal/cache"
	"github.com/ziadkadry99/schedview/internal/tables"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Language != "ru" {
		t.Errorf("expected default language ru, got %q", cfg.Language)
	}
	if cfg.LoadMode != tables.ModeParallel {
		t.Errorf("expected default load_mode %q, got %q", tables.ModeParallel, cfg.LoadMode)
	}
	if cfg.WeekFilter {
		t.Error("week_filter should be off by default")
	}
	if cfg.Cache.Backend != cache.BackendSQLite {
		t.Errorf("expected default cache backend sqlite, got %q", cfg.Cache.Backend)
	}
	if cfg.ClockInterval() != time.Second {
		t.Errorf("ClockInterval = %v, want 1s", cfg.ClockInterval())
	}
	if cfg.FetchTimeout() != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", cfg.FetchTimeout())
	}
	if diff := cmp.Diff(tables.DefaultOptions(), cfg.TablesOptions()); diff != "" {
		t.Errorf("TablesOptions mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.schedview.yml")

	original := DefaultConfig()
	original.Source = "https://example.org/md25/"
	original.Language = "en"
	original.LoadMode = tables.ModeSequential
	original.WeekFilter = true
	original.Cache = CacheConfig{Backend: cache.BackendRedis, RedisAddr: "localhost:6379", RedisDB: 2, Prefix: "md25:"}
	original.Site.Assets = []string{"img/**"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got := loaded.CacheOptions(); got.RedisDB != 2 || got.Prefix != "md25:" {
		t.Errorf("CacheOptions = %+v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("SCHEDVIEW_LANGUAGE", "en")
	t.Setenv("SCHEDVIEW_LOAD_MODE", "sequential")
	t.Setenv("SCHEDVIEW_CACHE__BACKEND", "memory")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Language != "en" {
		t.Errorf("language = %q, want en", loaded.Language)
	}
	if loaded.LoadMode != tables.ModeSequential {
		t.Errorf("load_mode = %q, want sequential", loaded.LoadMode)
	}
	if loaded.Cache.Backend != cache.BackendMemory {
		t.Errorf("cache.backend = %q, want memory", loaded.Cache.Backend)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SCHEDVIEW_SOURCE=https://example.org/site\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv sets process variables; register cleanup before it does.
	t.Setenv("SCHEDVIEW_SOURCE", "")
	os.Unsetenv("SCHEDVIEW_SOURCE")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Source != "https://example.org/site" {
		t.Errorf("source = %q, want the .env value", loaded.Source)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"SCHEDVIEW_SOURCE":            "source",
		"SCHEDVIEW_CLOCK_INTERVAL_MS": "clock_interval_ms",
		"SCHEDVIEW_SERVER__ALLOW_ALL": "server.allow_all",
		"SCHEDVIEW_CACHE__REDIS_ADDR": "cache.redis_addr",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := map[string]func(c *Config){
		"empty source":       func(c *Config) { c.Source = " " },
		"empty language":     func(c *Config) { c.Language = "" },
		"empty schedule":     func(c *Config) { c.ScheduleFile = "" },
		"bad load mode":      func(c *Config) { c.LoadMode = "eager" },
		"negative timeout":   func(c *Config) { c.FetchTimeoutSeconds = -1 },
		"zero clock":         func(c *Config) { c.ClockIntervalMS = 0 },
		"bad backend":        func(c *Config) { c.Cache.Backend = "localStorage" },
		"redis without addr": func(c *Config) { c.Cache.Backend = cache.BackendRedis },
		"port out of range":  func(c *Config) { c.Server.Port = 70000 },
		"empty output dir":   func(c *Config) { c.Site.OutputDir = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.css,**/*.{png,jpg}", []string{"**/*.css", "**/*.{png,jpg}"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitAndTrim(tt.input)); diff != "" {
			t.Errorf("splitAndTrim(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}
