package importer

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/ziadkadry99/schedview/internal/db"
	"github.com/ziadkadry99/schedview/internal/loader"
	"github.com/ziadkadry99/schedview/internal/progress"
	"github.com/ziadkadry99/schedview/internal/schedule"
	"github.com/ziadkadry99/schedview/internal/tables"
)

// newWorkbook builds a workbook with one sheet per entry of sheets. The
// first row of each sheet is its header.
func newWorkbook(t *testing.T, sheets map[string][][]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet(%s): %v", name, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow(%s, %s): %v", name, cell, err)
			}
		}
	}
	return f
}

func sampleSheets() map[string][][]any {
	return map[string][][]any{
		"Schedule": {
			{"Day", "Day name", "Time", "Subject", "Teacher", "Room", "Week"},
			{"Monday", "Понедельник", "09:00-10:30", "Математика", "Иванова А.П.", "312"},
			{"monday", "", "10:45-12:15", "Английский язык", "Smith J.", "Zoom", "Even"},
			{"tuesday", "Вторник", "09:00-10:30", "Физика", "Сидоров В.В.", "101", "third"},
			{"wednesday", "Среда"},
			{"", "", "12:00", "Химия"},
		},
		"Teachers": {
			{"Name", "Subject", "Contact"},
			{"Иванова Анна Петровна", "Математика", "ivanova@example.org"},
			{"", "Физика"},
			{"Smith John"},
		},
	}
}

func read(t *testing.T, f *excelize.File) (*Workbook, error) {
	t.Helper()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return Read(buf)
}

func TestRead(t *testing.T) {
	wb, err := read(t, newWorkbook(t, sampleSheets()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if diff := cmp.Diff([]string{"monday", "tuesday", "wednesday"}, wb.Days.Keys()); diff != "" {
		t.Errorf("day keys mismatch (-want +got):\n%s", diff)
	}
	if label, _ := wb.Days.Label("monday"); label != "Понедельник" {
		t.Errorf("monday label = %q", label)
	}

	monday, _ := wb.Schedule.Day("monday")
	want := []schedule.Lesson{
		{Time: "09:00-10:30", Subject: "Математика", Teacher: "Иванова А.П.", Room: "312"},
		{Time: "10:45-12:15", Subject: "Английский язык", Teacher: "Smith J.", Room: "Zoom", Week: schedule.Even},
	}
	if diff := cmp.Diff(want, monday.Pairs); diff != "" {
		t.Errorf("monday mismatch (-want +got):\n%s", diff)
	}
	for _, key := range []string{"tuesday", "wednesday"} {
		day, ok := wb.Schedule.Day(key)
		if !ok || len(day.Pairs) != 0 {
			t.Errorf("%s = %+v, %v; want registered and empty", key, day, ok)
		}
	}
	if wb.Lessons != 2 {
		t.Errorf("Lessons = %d, want 2", wb.Lessons)
	}

	wantTeachers := []schedule.Teacher{
		{Name: "Иванова Анна Петровна", Subject: "Математика", Contact: "ivanova@example.org"},
		{Name: "Smith John"},
	}
	if diff := cmp.Diff(wantTeachers, wb.Teachers); diff != "" {
		t.Errorf("teachers mismatch (-want +got):\n%s", diff)
	}

	if len(wb.Skipped) != 3 {
		t.Fatalf("Skipped = %q, want 3 entries", wb.Skipped)
	}
	if !strings.HasPrefix(wb.Skipped[0], "Schedule!4:") {
		t.Errorf("first skip = %q", wb.Skipped[0])
	}
}

func TestReadDaysSheetSetsOrder(t *testing.T) {
	sheets := sampleSheets()
	sheets["Days"] = [][]any{
		{"Key", "Name"},
		{"sunday", "Воскресенье"},
		{"monday", "Пн"},
		{"tuesday"},
	}
	wb, err := read(t, newWorkbook(t, sheets))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff([]string{"sunday", "monday", "tuesday", "wednesday"}, wb.Days.Keys()); diff != "" {
		t.Errorf("day keys mismatch (-want +got):\n%s", diff)
	}
	if label, _ := wb.Days.Label("monday"); label != "Пн" {
		t.Errorf("Days sheet label should win, got %q", label)
	}
	if label, _ := wb.Days.Label("tuesday"); label != "tuesday" {
		t.Errorf("tuesday label = %q, want the key", label)
	}
}

func TestReadErrors(t *testing.T) {
	t.Run("no schedule sheet", func(t *testing.T) {
		_, err := read(t, newWorkbook(t, map[string][][]any{"Teachers": {{"Name"}}}))
		if !errors.Is(err, ErrMissingSheet) {
			t.Errorf("err = %v, want ErrMissingSheet", err)
		}
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := read(t, newWorkbook(t, map[string][][]any{"Schedule": {{"Day", "Time"}}}))
		if err == nil || !strings.Contains(err.Error(), `"subject"`) {
			t.Errorf("err = %v, want missing subject column", err)
		}
	})

	t.Run("not a workbook", func(t *testing.T) {
		if _, err := Read(strings.NewReader("day,time,subject")); err == nil {
			t.Error("expected error for non-xlsx input")
		}
	})
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "schedule.xlsx")
	if err := newWorkbook(t, sampleSheets()).SaveAs(src); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	store, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	im := New(store)
	im.Reporter = &progress.CIReporter{Description: "import", Out: &out}

	site := filepath.Join(dir, "site")
	res, err := im.ImportFile(context.Background(), src, site)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(res.Written) != 3 {
		t.Errorf("Written = %v", res.Written)
	}
	if !strings.Contains(out.String(), "[3/3] daysMap.json") {
		t.Errorf("progress output:\n%s", out.String())
	}

	// The written files load like a published site, minus translations.
	l, err := loader.New(site)
	if err != nil {
		t.Fatalf("loader.New: %v", err)
	}
	tb, report := tables.Load(context.Background(), l, tables.DefaultOptions())
	if len(report.Failed) != 1 || report.Failed[tables.ResourceLanguage] == nil {
		t.Fatalf("failed = %v, want only the language file", report.Failed)
	}
	if len(tb.Teachers) != 2 || tb.DayNames.Len() != 3 {
		t.Errorf("teachers = %d, days = %d", len(tb.Teachers), tb.DayNames.Len())
	}
	if day, _ := tb.Schedule.Day("monday"); len(day.Pairs) != 2 {
		t.Errorf("monday pairs = %d, want 2", len(day.Pairs))
	}

	runs, err := store.RecentImports(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentImports: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	got := runs[0]
	if got.ID != res.ID || got.Source != src || got.Teachers != 2 || got.Days != 3 || got.Lessons != 2 {
		t.Errorf("run = %+v", got)
	}
}

func TestImportFileMissingSource(t *testing.T) {
	_, err := New(nil).ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing workbook")
	}
}
