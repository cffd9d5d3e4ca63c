package site

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ziadkadry99/schedview/internal/progress"
	"github.com/ziadkadry99/schedview/internal/schedule"
	"github.com/ziadkadry99/schedview/internal/tables"
	"github.com/ziadkadry99/schedview/internal/view"
)

// SiteGenerator writes a static HTML rendition of the loaded tables: one
// page per week and day, plus the grades, teachers and index pages.
type SiteGenerator struct {
	OutputDir string
	Language  string
	Tables    *tables.Tables
	Renderer  *view.Renderer
	HTML      *HTMLRenderer
	// AssetsDir and Assets select extra files (doublestar patterns) to copy
	// next to the pages.
	AssetsDir string
	Assets    []string
	Reporter  progress.Reporter
	Now       func() time.Time
}

// NewSiteGenerator creates a SiteGenerator writing into outputDir.
func NewSiteGenerator(outputDir, lang string, t *tables.Tables, r *view.Renderer) (*SiteGenerator, error) {
	h, err := NewHTMLRenderer(r.Translator)
	if err != nil {
		return nil, err
	}
	return &SiteGenerator{
		OutputDir: outputDir,
		Language:  lang,
		Tables:    t,
		Renderer:  r,
		HTML:      h,
		Reporter:  progress.Nop{},
		Now:       time.Now,
	}, nil
}

// Result summarises a generation run.
type Result struct {
	Pages  int
	Assets int
}

// States lists every page state the generator writes, index excluded.
func States(lang string) []view.State {
	base := view.NewState(lang)
	var states []view.State
	for _, w := range []schedule.Parity{schedule.Odd, schedule.Even} {
		for d := 0; d < view.DaysInWeek; d++ {
			s := base.SwitchWeek(w)
			s.DayIndex = d
			states = append(states, s)
		}
	}
	return append(states, base.SelectTab(view.TabGrades), base.SelectTab(view.TabTeachers))
}

// Generate builds the full static site. The index page shows the current
// week and weekday.
func (g *SiteGenerator) Generate(ctx context.Context) (Result, error) {
	var res Result
	if g.Tables == nil {
		g.Tables = &tables.Tables{}
	}
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return res, err
	}

	// Write static assets.
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return res, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "clock.js"), []byte(clockScript), 0o644); err != nil {
		return res, err
	}

	now := g.Now()
	states := States(g.Language)
	total := len(states) + 1
	g.Reporter.Start(total)

	for i, s := range states {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		name := PageName(s)
		if err := g.writePage(name, s, now); err != nil {
			return res, fmt.Errorf("rendering %s: %w", name, err)
		}
		res.Pages++
		g.Reporter.Update(i+1, name)
	}

	today := view.NewState(g.Language).Today(now, g.Tables.DayNames)
	if err := g.writePage("index.html", today, now); err != nil {
		return res, fmt.Errorf("rendering index.html: %w", err)
	}
	res.Pages++
	g.Reporter.Update(total, "index.html")

	if err := g.writeData(); err != nil {
		return res, err
	}

	if g.AssetsDir != "" && len(g.Assets) > 0 {
		n, err := CopyAssets(g.AssetsDir, g.OutputDir, g.Assets)
		if err != nil {
			return res, fmt.Errorf("copying assets: %w", err)
		}
		res.Assets = n
	}

	g.Reporter.Finish()
	return res, nil
}

func (g *SiteGenerator) writePage(name string, s view.State, now time.Time) error {
	f, err := os.Create(filepath.Join(g.OutputDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	page := g.Renderer.Render(s, g.Tables, now)
	return g.HTML.Write(f, page, StaticLinks{})
}

// writeData stores the page index so other tools can find every page.
func (g *SiteGenerator) writeData() error {
	type entry struct {
		File  string     `json:"file"`
		State view.State `json:"state"`
	}
	var entries []entry
	for _, s := range States(g.Language) {
		entries = append(entries, entry{File: PageName(s), State: s})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.OutputDir, "pages.json"), data, 0o644)
}
