package cmd

import (
	"errors"
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/arcanaland/pricerank/internal/config"
	"github.com/arcanaland/pricerank/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    = config.Default()
	logger = zap.NewNop()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "pricerank",
	Short: "Rank Scryfall cards by price and EDHREC popularity",
	Long: `Pricerank reads a Scryfall bulk data export and reports on card prices
against EDHREC popularity ranks.

The JSON input should be the 'Oracle Cards' file from
https://scryfall.com/docs/api/bulk-data. Cards without an EDHREC rank or
without a current USD price are left out of every report.

Examples:
  pricerank price_rank_csv oracle-cards.json
  pricerank top_cards_under_price oracle-cards.json 100 0.50
  pricerank top_cards_under_price oracle-cards.json 20 1.00 Creature`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}

		applyColorMode(cfg.Color)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return &UsageError{Msg: "missing mode"}
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Invalid mode")
		return &UsageError{Msg: fmt.Sprintf("unknown mode %q", args[0])}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/pricerank/config.toml)")

	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Msg: err.Error()}
	})
}

// Execute runs the command tree. Usage errors print the usage of the
// command that failed to standard output.
func Execute() error {
	c, err := RootCmd.ExecuteC()

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprint(c.OutOrStdout(), c.UsageString())
	}

	return err
}

// applyColorMode decides whether diagnostics are colored
func applyColorMode(mode string) {
	switch mode {
	case config.ColorAlways:
		colorize.NoColor = false
	case config.ColorNever:
		colorize.NoColor = true
	default:
		colorize.NoColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))
	}
}
