package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and edit the local cache",
	Long:  `Reads and writes JSON values in the configured cache backend (sqlite, redis or memory). The viewer keeps its position under the key view.state.`,
}

var cacheGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the JSON stored under key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer c.Close()

		v, ok := c.Raw(cmd.Context(), args[0])
		if !ok {
			return fmt.Errorf("key %q not found", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var cacheSetCmd = &cobra.Command{
	Use:   "set <key> <json>",
	Short: "Store a JSON value under key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !json.Valid([]byte(args[1])) {
			return fmt.Errorf("value is not valid JSON: %s", args[1])
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Backend().Set(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("storing %q: %w", args[0], err)
		}
		return nil
	},
}

var cacheRmCmd = &cobra.Command{
	Use:     "rm <key>",
	Aliases: []string{"delete"},
	Short:   "Remove key from the cache",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Backend().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("removing %q: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheGetCmd, cacheSetCmd, cacheRmCmd)
	rootCmd.AddCommand(cacheCmd)
}
