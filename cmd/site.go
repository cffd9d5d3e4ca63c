package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/schedview/internal/i18n"
	"github.com/ziadkadry99/schedview/internal/progress"
	"github.com/ziadkadry99/schedview/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate a static schedule website",
	Long: `Generates a self-contained static HTML site: one page per week parity and
day, plus the grades and teachers pages and an index pointing at today.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 0, "port for the local dev server (defaults to server.port)")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	siteCmd.Flags().String("output", "", "override output directory (defaults to site.output_dir)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := newLoader(cfg)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.Site.OutputDir
	}

	ctx := cmd.Context()
	generator, err := site.NewSiteGenerator(outputDir, cfg.Language, loadTables(ctx, cfg, l, cfg.Language), newRenderer(cfg))
	if err != nil {
		return err
	}
	generator.AssetsDir = cfg.Site.AssetsDir
	generator.Assets = cfg.Site.Assets
	generator.Reporter = progress.NewReporter(i18n.Default().T(cfg.Language, "site_generating", nil))

	res, err := generator.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages, %d assets)\n", outputDir, res.Pages, res.Assets)

	if serve, _ := cmd.Flags().GetBool("serve"); serve {
		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.Server.Port
		}
		openBrowser, _ := cmd.Flags().GetBool("open")
		if err := site.Serve(outputDir, port, openBrowser); err != nil {
			return fmt.Errorf("serving site: %w", err)
		}
	}

	return nil
}
