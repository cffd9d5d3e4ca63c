package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/schedview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize schedview configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that asks for the data source, language and storage settings and writes a .schedview.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
