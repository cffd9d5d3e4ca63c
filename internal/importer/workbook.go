// Package importer converts a spreadsheet into the JSON documents the
// schedule site is built from.
package importer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ziadkadry99/schedview/internal/schedule"
)

// Sheet names, matched case-insensitively.
const (
	SheetTeachers = "Teachers"
	SheetSchedule = "Schedule"
	SheetDays     = "Days"
)

// ErrMissingSheet is returned when the workbook has no Schedule sheet.
var ErrMissingSheet = errors.New("importer: workbook has no Schedule sheet")

// Workbook is the parsed content of a spreadsheet.
type Workbook struct {
	Teachers []schedule.Teacher
	Schedule *schedule.Document
	Days     *schedule.DayNames
	Lessons  int
	// Skipped lists rows that were ignored, as "Sheet!row: reason".
	Skipped []string
}

// Read parses a workbook. The Schedule sheet is required; Teachers and
// Days are optional. Without a Days sheet the day map follows the order
// in which days first appear on the Schedule sheet.
func Read(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("importer: opening workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("importer: closing workbook: %v", err)
		}
	}()

	wb := &Workbook{
		Teachers: []schedule.Teacher{},
		Schedule: &schedule.Document{Schedule: &schedule.Schedule{Days: map[string]schedule.Day{}}},
		Days:     schedule.NewDayNames(),
	}

	sheets := sheetIndex(f)
	sched, ok := sheets[strings.ToLower(SheetSchedule)]
	if !ok {
		return nil, ErrMissingSheet
	}

	if name, ok := sheets[strings.ToLower(SheetDays)]; ok {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("importer: reading %s: %w", name, err)
		}
		wb.readDays(name, rows)
	}

	rows, err := f.GetRows(sched)
	if err != nil {
		return nil, fmt.Errorf("importer: reading %s: %w", sched, err)
	}
	if err := wb.readSchedule(sched, rows); err != nil {
		return nil, err
	}

	if name, ok := sheets[strings.ToLower(SheetTeachers)]; ok {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("importer: reading %s: %w", name, err)
		}
		if err := wb.readTeachers(name, rows); err != nil {
			return nil, err
		}
	}

	return wb, nil
}

func sheetIndex(f *excelize.File) map[string]string {
	out := map[string]string{}
	for _, name := range f.GetSheetList() {
		out[strings.ToLower(strings.TrimSpace(name))] = name
	}
	return out
}

// header maps lower-cased column titles to their index.
type header map[string]int

func parseHeader(row []string) header {
	h := header{}
	for i, title := range row {
		h[strings.ToLower(strings.TrimSpace(title))] = i
	}
	return h
}

func (h header) require(sheet string, cols ...string) error {
	for _, c := range cols {
		if _, ok := h[c]; !ok {
			return fmt.Errorf("importer: sheet %s has no %q column", sheet, c)
		}
	}
	return nil
}

// cell returns the trimmed value of column col, or "" when the row is
// shorter or the column does not exist.
func (h header) cell(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (wb *Workbook) skip(sheet string, row int, format string, args ...any) {
	msg := fmt.Sprintf("%s!%d: %s", sheet, row, fmt.Sprintf(format, args...))
	log.Printf("importer: skipping %s", msg)
	wb.Skipped = append(wb.Skipped, msg)
}

func (wb *Workbook) readDays(sheet string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	h := parseHeader(rows[0])
	for i, row := range rows[1:] {
		key := strings.ToLower(h.cell(row, "key"))
		if key == "" {
			wb.skip(sheet, i+2, "empty key")
			continue
		}
		label := h.cell(row, "name")
		if label == "" {
			label = key
		}
		wb.Days.Set(key, label)
	}
}

func (wb *Workbook) readSchedule(sheet string, rows [][]string) error {
	if len(rows) == 0 {
		return fmt.Errorf("importer: sheet %s is empty", sheet)
	}
	h := parseHeader(rows[0])
	if err := h.require(sheet, "day", "time", "subject"); err != nil {
		return err
	}

	days := wb.Schedule.Schedule.Days
	for i, row := range rows[1:] {
		n := i + 2
		key := strings.ToLower(h.cell(row, "day"))
		if key == "" {
			wb.skip(sheet, n, "empty day")
			continue
		}
		if _, ok := wb.Days.Label(key); !ok {
			label := h.cell(row, "day name")
			if label == "" {
				label = key
			}
			wb.Days.Set(key, label)
		}
		day := days[key]
		if day.Pairs == nil {
			day.Pairs = []schedule.Lesson{}
		}

		lesson := schedule.Lesson{
			Time:    h.cell(row, "time"),
			Subject: h.cell(row, "subject"),
			Teacher: h.cell(row, "teacher"),
			Room:    h.cell(row, "room"),
		}
		if w := h.cell(row, "week"); w != "" {
			p, err := schedule.ParseParity(w)
			if err != nil {
				days[key] = day
				wb.skip(sheet, n, "week %q: %v", w, err)
				continue
			}
			lesson.Week = p
		}
		// A row with only a day registers the day without lessons.
		if lesson.Time == "" && lesson.Subject == "" {
			days[key] = day
			continue
		}
		if lesson.Subject == "" {
			days[key] = day
			wb.skip(sheet, n, "empty subject")
			continue
		}
		day.Pairs = append(day.Pairs, lesson)
		days[key] = day
		wb.Lessons++
	}
	return nil
}

func (wb *Workbook) readTeachers(sheet string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	h := parseHeader(rows[0])
	if err := h.require(sheet, "name"); err != nil {
		return err
	}
	for i, row := range rows[1:] {
		t := schedule.Teacher{
			Name:    h.cell(row, "name"),
			Subject: h.cell(row, "subject"),
			Contact: h.cell(row, "contact"),
		}
		if t.Name == "" {
			wb.skip(sheet, i+2, "empty name")
			continue
		}
		wb.Teachers = append(wb.Teachers, t)
	}
	return nil
}
