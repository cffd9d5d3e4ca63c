package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/schedview/internal/cache"
	"github.com/ziadkadry99/schedview/internal/tui"
	"github.com/ziadkadry99/schedview/internal/view"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse the schedule in an interactive terminal viewer",
	Long: `Opens a full-screen viewer. Keys: 1/2/3 or tab switch sections, o/e or w
change the week, left/right or h/l step through days, t jumps to today, L
switches language and q quits. The last position is kept in the cache.`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().Bool("today", false, "start on today instead of the saved position")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := newLoader(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	c, err := openCache(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; the view position will not be saved\n", err)
	} else {
		defer c.Close()
	}

	// Load the tables in the language the viewer was last left in.
	lang := cfg.Language
	if c != nil {
		lang = cache.Load(ctx, c, tui.StateKey, view.NewState(lang)).Language
	}

	today, _ := cmd.Flags().GetBool("today")
	return tui.Run(ctx, tui.Options{
		Tables:   loadTables(ctx, cfg, l, lang),
		Renderer: newRenderer(cfg),
		Cache:    c,
		Loader:   l,
		LangDir:  cfg.LangDir,
		AutoWeek: cfg.AutoWeek || today,
		Interval: cfg.ClockInterval(),
	})
}
