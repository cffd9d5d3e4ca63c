package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ziadkadry99/schedview/internal/db"
	"github.com/ziadkadry99/schedview/internal/progress"
	"github.com/ziadkadry99/schedview/internal/tables"
)

// Importer writes the documents of a workbook into a site directory.
type Importer struct {
	// Files names the output documents; only the *File fields are used.
	Files tables.Options
	// DB, when set, receives a record of every successful run.
	DB       *db.DB
	Reporter progress.Reporter
}

// New returns an Importer with the default file names.
func New(store *db.DB) *Importer {
	return &Importer{
		Files:    tables.DefaultOptions(),
		DB:       store,
		Reporter: progress.Nop{},
	}
}

// Result describes a finished import.
type Result struct {
	ID       string
	Workbook *Workbook
	Written  []string
}

// ImportFile converts the workbook at src and writes the documents to outDir.
func (im *Importer) ImportFile(ctx context.Context, src, outDir string) (*Result, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("importer: opening %s: %w", src, err)
	}
	defer f.Close()

	wb, err := Read(f)
	if err != nil {
		return nil, err
	}

	res := &Result{ID: uuid.NewString(), Workbook: wb}

	docs := []struct {
		name string
		v    any
	}{
		{im.Files.TeachersFile, wb.Teachers},
		{im.Files.ScheduleFile, wb.Schedule},
		{im.Files.DaysMapFile, wb.Days},
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("importer: creating %s: %w", outDir, err)
	}

	rep := im.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}
	rep.Start(len(docs))
	for i, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := filepath.Join(outDir, d.name)
		if err := writeJSON(p, d.v); err != nil {
			return nil, err
		}
		res.Written = append(res.Written, p)
		rep.Update(i+1, d.name)
	}
	rep.Finish()

	if im.DB != nil {
		run := db.ImportRun{
			ID:        res.ID,
			Source:    src,
			OutputDir: outDir,
			Teachers:  len(wb.Teachers),
			Days:      wb.Days.Len(),
			Lessons:   wb.Lessons,
		}
		if err := im.DB.RecordImport(ctx, run); err != nil {
			return res, err
		}
	}
	return res, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("importer: encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("importer: writing %s: %w", path, err)
	}
	return nil
}
