package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/pricerank/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the pricerank configuration",
	Long:  `Commands for managing the pricerank configuration file.`,
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return &UsageError{Msg: "missing config subcommand"}
		}
		return &UsageError{Msg: fmt.Sprintf("unknown config subcommand %q", args[0])}
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.InitConfig(configPath)
		if err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Config file initialized at:", path)
		fmt.Fprintln(cmd.OutOrStdout(), "Catalog library:", cfg.GetCatalogLibraryPath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
