package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/schedview/internal/db"
	"github.com/ziadkadry99/schedview/internal/i18n"
	"github.com/ziadkadry99/schedview/internal/importer"
	"github.com/ziadkadry99/schedview/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert a spreadsheet into the schedule JSON documents",
	Long: `Reads an .xlsx workbook with a Schedule sheet (columns Day, Day name, Time,
Subject, Teacher, Room, Week), an optional Teachers sheet (Name, Subject,
Contact) and an optional Days sheet (Key, Name), and writes the schedule,
teachers and day map files. Runs are recorded in the SQLite file at
cache.path.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("xlsx", "", "workbook to import")
	importCmd.Flags().String("out", "", "output directory (defaults to source when it is a directory)")
	importCmd.Flags().Bool("history", false, "list recent imports instead of importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if history, _ := cmd.Flags().GetBool("history"); history {
		runs, err := store.RecentImports(ctx, 20)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWHEN\tSOURCE\tOUTPUT\tDAYS\tLESSONS\tTEACHERS")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Source, r.OutputDir, r.Days, r.Lessons, r.Teachers)
		}
		return w.Flush()
	}

	src, _ := cmd.Flags().GetString("xlsx")
	if src == "" {
		return fmt.Errorf("--xlsx is required")
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		info, err := os.Stat(cfg.Source)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("source %s is not a local directory; pass --out", cfg.Source)
		}
		out = cfg.Source
	}

	im := importer.New(store)
	im.Files = cfg.TablesOptions()
	im.Reporter = progress.NewReporter(i18n.Default().T(cfg.Language, "import_converting", nil))

	res, err := im.ImportFile(ctx, src, out)
	if err != nil {
		return fmt.Errorf("importing %s: %w", src, err)
	}

	wb := res.Workbook
	fmt.Printf("Imported %d days, %d lessons, %d teachers into %s\n", wb.Days.Len(), wb.Lessons, len(wb.Teachers), out)
	for _, s := range wb.Skipped {
		fmt.Fprintf(os.Stderr, "  skipped %s\n", s)
	}
	return nil
}
