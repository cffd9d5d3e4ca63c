package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/ziadkadry99/schedview/internal/cache"
	"github.com/ziadkadry99/schedview/internal/config"
	"github.com/ziadkadry99/schedview/internal/i18n"
	"github.com/ziadkadry99/schedview/internal/loader"
	"github.com/ziadkadry99/schedview/internal/site"
	"github.com/ziadkadry99/schedview/internal/tables"
	"github.com/ziadkadry99/schedview/internal/view"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `schedview init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLoader creates the resource loader described by cfg.
func newLoader(cfg *config.Config) (*loader.Loader, error) {
	return loader.New(cfg.Source,
		loader.WithTimeout(cfg.FetchTimeout()),
		loader.WithCacheBust(cfg.CacheBust),
	)
}

// loadTables loads every document for lang. Missing documents are reported
// on stderr; the page renders without them.
func loadTables(ctx context.Context, cfg *config.Config, l *loader.Loader, lang string) *tables.Tables {
	t, _ := loadTablesReport(ctx, cfg, l, lang)
	return t
}

func loadTablesReport(ctx context.Context, cfg *config.Config, l *loader.Loader, lang string) (*tables.Tables, tables.Report) {
	opts := cfg.TablesOptions()
	if lang != "" {
		opts.Language = lang
	}
	t, report := tables.Load(ctx, l, opts)
	if !report.OK() {
		names := make([]string, 0, len(report.Failed))
		for name := range report.Failed {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", name, report.Failed[name])
		}
	} else if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d days, %d teachers from %s\n", t.DayNames.Len(), len(t.Teachers), l.Source())
	}
	return t, report
}

// tablesLoader adapts loadTables to site.LoadFunc.
func tablesLoader(cfg *config.Config, l *loader.Loader) site.LoadFunc {
	return func(ctx context.Context, lang string) (*tables.Tables, tables.Report) {
		return loadTablesReport(ctx, cfg, l, lang)
	}
}

// newRenderer returns the renderer configured by cfg.
func newRenderer(cfg *config.Config) *view.Renderer {
	return &view.Renderer{
		Translator: i18n.Default(),
		WeekFilter: cfg.WeekFilter,
	}
}

// openCache opens the configured cache backend.
func openCache(cfg *config.Config) (*cache.Cache, error) {
	c, err := cache.Open(cfg.CacheOptions())
	if err != nil {
		return nil, fmt.Errorf("opening %s cache: %w", cfg.Cache.Backend, err)
	}
	return c, nil
}
