package tables

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/schedview/internal/loader"
)

const fixtureDir = "../../testdata/site"

func newLoader(t *testing.T, dir string) *loader.Loader {
	t.Helper()
	l, err := loader.New(dir)
	if err != nil {
		t.Fatalf("loader.New: %v", err)
	}
	return l
}

func TestLanguageFile(t *testing.T) {
	tests := map[string]string{
		"ru":    "russian_lang.json",
		"ru-RU": "russian_lang.json",
		"en":    "english_lang.json",
		"de":    "english_lang.json",
		"":      "english_lang.json",
	}
	for lang, want := range tests {
		if got := LanguageFile(lang); got != want {
			t.Errorf("LanguageFile(%q) = %q, want %q", lang, got, want)
		}
	}
}

func TestLoadBothModes(t *testing.T) {
	for _, mode := range []string{ModeSequential, ModeParallel} {
		t.Run(mode, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Mode = mode
			tb, report := Load(context.Background(), newLoader(t, fixtureDir), opts)
			if !report.OK() {
				t.Fatalf("unexpected failures: %v", report.Failed)
			}
			if got, _ := tb.Translations.Get("grades", "title"); got != "Оценки" {
				t.Errorf("grades title = %q", got)
			}
			if len(tb.Teachers) != 3 {
				t.Errorf("teachers = %d, want 3", len(tb.Teachers))
			}
			wantKeys := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
			if diff := cmp.Diff(wantKeys, tb.DayNames.Keys()); diff != "" {
				t.Errorf("day keys mismatch (-want +got):\n%s", diff)
			}
			if day, ok := tb.Schedule.Day("monday"); !ok || len(day.Pairs) != 3 {
				t.Errorf("monday = %+v, %v", day, ok)
			}
		})
	}
}

func TestLoadDegradesOnMissingFiles(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join(fixtureDir, "teachers.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "teachers.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "daysMap.json"), []byte(`{"monday": `), 0o644); err != nil {
		t.Fatal(err)
	}

	tb, report := Load(context.Background(), newLoader(t, dir), DefaultOptions())

	if tb.Translations != nil || tb.Schedule != nil || tb.DayNames != nil {
		t.Errorf("failed tables should stay nil: %+v", tb)
	}
	if len(tb.Teachers) != 3 {
		t.Errorf("teachers = %d, want 3", len(tb.Teachers))
	}
	if len(report.Failed) != 3 {
		t.Fatalf("failed = %v, want 3 entries", report.Failed)
	}

	var fe *loader.FetchError
	if !errors.As(report.Failed[ResourceSchedule], &fe) || fe.StatusCode != http.StatusNotFound {
		t.Errorf("schedule error = %v, want 404 FetchError", report.Failed[ResourceSchedule])
	}
	var pe *loader.ParseError
	if !errors.As(report.Failed[ResourceDays], &pe) {
		t.Errorf("days error = %v, want ParseError", report.Failed[ResourceDays])
	}
}

func TestReloadLanguage(t *testing.T) {
	l := newLoader(t, fixtureDir)
	tb, _ := Load(context.Background(), l, DefaultOptions())

	if err := tb.ReloadLanguage(context.Background(), l, "assets/lang", "en"); err != nil {
		t.Fatalf("ReloadLanguage: %v", err)
	}
	if got, _ := tb.Translations.Get("grades", "title"); got != "Grades" {
		t.Errorf("grades title = %q, want Grades", got)
	}

	if err := tb.ReloadLanguage(context.Background(), l, "nowhere", "ru"); err == nil {
		t.Fatal("expected error for missing language dir")
	}
	if got, _ := tb.Translations.Get("grades", "title"); got != "Grades" {
		t.Errorf("grades title after failed reload = %q, want the previous table", got)
	}
	if tb.Language != "en" {
		t.Errorf("Language = %q, want en", tb.Language)
	}
}

func TestReportInterrupted(t *testing.T) {
	_, report := Load(context.Background(), newLoader(t, t.TempDir()), DefaultOptions())
	if report.OK() || report.Interrupted() {
		t.Errorf("missing files: OK = %v, Interrupted = %v, want false, false", report.OK(), report.Interrupted())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, report = Load(ctx, newLoader(t, fixtureDir), DefaultOptions())
	if !report.Interrupted() {
		t.Errorf("cancelled load should be interrupted: %v", report.Failed)
	}
}
