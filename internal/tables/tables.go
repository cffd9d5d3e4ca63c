// Package tables loads the four documents a schedule page is rendered from.
package tables

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/schedview/internal/loader"
	"github.com/ziadkadry99/schedview/internal/schedule"
)

// Load modes.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

// Resource names used in Report and logs.
const (
	ResourceLanguage = "language"
	ResourceSchedule = "schedule"
	ResourceTeachers = "teachers"
	ResourceDays     = "days"
)

// Tables holds whatever loaded successfully. Any field may be nil.
type Tables struct {
	Language     string
	Translations schedule.Translations
	Schedule     *schedule.Document
	Teachers     []schedule.Teacher
	DayNames     *schedule.DayNames
}

// Options controls where the documents live and how they are fetched.
type Options struct {
	Language     string
	LangDir      string
	ScheduleFile string
	TeachersFile string
	DaysMapFile  string
	Mode         string
}

// DefaultOptions mirrors the file layout of the published site.
func DefaultOptions() Options {
	return Options{
		Language:     "ru",
		LangDir:      "assets/lang",
		ScheduleFile: "schedule-md25.json",
		TeachersFile: "teachers.json",
		DaysMapFile:  "daysMap.json",
		Mode:         ModeParallel,
	}
}

// Report lists the resources that failed to load.
type Report struct {
	Failed map[string]error
}

// OK reports whether every resource loaded.
func (r Report) OK() bool { return len(r.Failed) == 0 }

// Interrupted reports whether any resource failed because its context was
// cancelled or timed out, rather than because the resource is bad.
func (r Report) Interrupted() bool {
	for _, err := range r.Failed {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return true
		}
	}
	return false
}

// LanguageFile returns the translation file name for lang.
func LanguageFile(lang string) string {
	if schedule.IsRussian(lang) {
		return "russian_lang.json"
	}
	return "english_lang.json"
}

type task struct {
	name string
	path string
	load func(ctx context.Context, l *loader.Loader, p string, t *Tables) error
}

func (o Options) tasks() []task {
	return []task{
		{ResourceLanguage, path.Join(o.LangDir, LanguageFile(o.Language)), loadTranslations},
		{ResourceSchedule, o.ScheduleFile, loadSchedule},
		{ResourceTeachers, o.TeachersFile, loadTeachers},
		{ResourceDays, o.DaysMapFile, loadDays},
	}
}

// Load fetches all four documents. A failed document is logged and left
// nil; Load itself never fails.
func Load(ctx context.Context, l *loader.Loader, opts Options) (*Tables, Report) {
	t := &Tables{Language: opts.Language}
	report := Report{Failed: map[string]error{}}

	if opts.Mode == ModeSequential {
		for _, tk := range opts.tasks() {
			if err := tk.load(ctx, l, tk.path, t); err != nil {
				log.Printf("tables: loading %s: %v", tk.name, err)
				report.Failed[tk.name] = err
			}
		}
		return t, report
	}

	// Each task writes a distinct field of t; only the report is shared.
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, tk := range opts.tasks() {
		g.Go(func() error {
			if err := tk.load(gctx, l, tk.path, t); err != nil {
				log.Printf("tables: loading %s: %v", tk.name, err)
				mu.Lock()
				report.Failed[tk.name] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return t, report
}

// LoadTranslations fetches the language file for lang without touching
// any Tables value, so it can run off the goroutine that owns the tables.
func LoadTranslations(ctx context.Context, l *loader.Loader, langDir, lang string) (schedule.Translations, error) {
	var tr schedule.Translations
	p := path.Join(langDir, LanguageFile(lang))
	if err := l.LoadJSON(ctx, p, &tr); err != nil {
		return nil, fmt.Errorf("loading language %s: %w", lang, err)
	}
	return tr, nil
}

// ReloadLanguage replaces the translation table for a new language. On
// failure the current table and language are kept.
func (t *Tables) ReloadLanguage(ctx context.Context, l *loader.Loader, langDir, lang string) error {
	tr, err := LoadTranslations(ctx, l, langDir, lang)
	if err != nil {
		return err
	}
	t.Language = lang
	t.Translations = tr
	return nil
}

func loadTranslations(ctx context.Context, l *loader.Loader, p string, t *Tables) error {
	var tr schedule.Translations
	if err := l.LoadJSON(ctx, p, &tr); err != nil {
		return err
	}
	t.Translations = tr
	return nil
}

func loadSchedule(ctx context.Context, l *loader.Loader, p string, t *Tables) error {
	var doc schedule.Document
	if err := l.LoadJSON(ctx, p, &doc); err != nil {
		return err
	}
	t.Schedule = &doc
	return nil
}

func loadTeachers(ctx context.Context, l *loader.Loader, p string, t *Tables) error {
	var teachers []schedule.Teacher
	if err := l.LoadJSON(ctx, p, &teachers); err != nil {
		return err
	}
	if teachers == nil {
		teachers = []schedule.Teacher{}
	}
	t.Teachers = teachers
	return nil
}

func loadDays(ctx context.Context, l *loader.Loader, p string, t *Tables) error {
	days := schedule.NewDayNames()
	if err := l.LoadJSON(ctx, p, days); err != nil {
		return err
	}
	t.DayNames = days
	return nil
}
