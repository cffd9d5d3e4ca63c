package cmd

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/schedview/internal/tui"
	"github.com/ziadkadry99/schedview/internal/view"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print one rendered page",
	Long: `Loads the documents and prints a single page to stdout. Without flags the
schedule of today is shown for the current week parity.`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().String("tab", "", "tab to show: schedule, grades or teachers")
	showCmd.Flags().String("week", "", "week parity: odd or even")
	showCmd.Flags().String("day", "", "day key (monday) or index 0-6")
	showCmd.Flags().String("lang", "", "interface language (defaults to the config)")
	showCmd.Flags().Bool("plain", false, "print without colors")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := newLoader(cfg)
	if err != nil {
		return err
	}

	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = cfg.Language
	}
	t := loadTables(cmd.Context(), cfg, l, lang)

	now := time.Now()
	q := url.Values{}
	for _, name := range []string{"tab", "week"} {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			q.Set(name, v)
		}
	}
	state, err := view.ParseQuery(q, view.NewState(lang).Today(now, t.DayNames))
	if err != nil {
		return err
	}
	if d, _ := cmd.Flags().GetString("day"); d != "" {
		if state.DayIndex, err = view.ResolveDay(d, t.DayNames); err != nil {
			return err
		}
	}

	styles := tui.DefaultStyles()
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		styles = tui.PlainStyles()
	}

	page := newRenderer(cfg).Render(state, t, now)
	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderPage(page, styles))
	return nil
}
