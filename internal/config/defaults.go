package config

import (
	"time"

	"github.com/ziadkadry99/schedview/internal/cache"
	"github.com/ziadkadry99/schedview/internal/tables"
)

// DefaultAssets are copied next to generated pages when the site config
// names none.
var DefaultAssets = []string{
	"**/*.css",
	"**/*.{png,jpg,svg,ico}",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	files := tables.DefaultOptions()
	return &Config{
		Source:              ".",
		Language:            files.Language,
		LangDir:             files.LangDir,
		ScheduleFile:        files.ScheduleFile,
		TeachersFile:        files.TeachersFile,
		DaysMapFile:         files.DaysMapFile,
		CacheBust:           true,
		LoadMode:            files.Mode,
		FetchTimeoutSeconds: 10,
		ClockIntervalMS:     1000,
		Cache: CacheConfig{
			Backend: cache.BackendSQLite,
			Path:    ".schedview/cache.db",
			Prefix:  "schedview:",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Site: SiteConfig{
			OutputDir: "public",
			Assets:    append([]string(nil), DefaultAssets...),
		},
	}
}

// TablesOptions maps the file settings onto tables.Options.
func (c *Config) TablesOptions() tables.Options {
	return tables.Options{
		Language:     c.Language,
		LangDir:      c.LangDir,
		ScheduleFile: c.ScheduleFile,
		TeachersFile: c.TeachersFile,
		DaysMapFile:  c.DaysMapFile,
		Mode:         c.LoadMode,
	}
}

// CacheOptions maps the cache section onto cache.Options.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:   c.Cache.Backend,
		Path:      c.Cache.Path,
		RedisAddr: c.Cache.RedisAddr,
		RedisDB:   c.Cache.RedisDB,
		Prefix:    c.Cache.Prefix,
	}
}

// FetchTimeout returns the per-request timeout of the loader.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// ClockInterval returns the clock refresh period.
func (c *Config) ClockInterval() time.Duration {
	return time.Duration(c.ClockIntervalMS) * time.Millisecond
}
