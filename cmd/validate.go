package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [scryfall_json_input]",
	Short: "Check that a catalog export can be extracted",
	Long: `Validate reads a Scryfall bulk data export the same way the reports do
and prints how many records became cards and how many were skipped.
It fails on the same malformed records the reports fail on.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		out := cmd.OutOrStdout()

		_, stats, err := loadCatalogStats(name)

		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if err != nil {
			fmt.Fprintf(out, "❌ Catalog '%s' cannot be extracted:\n", name)
			fmt.Fprintln(out, colorize.RedString("%v", err))
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Fprintf(out, "✅ Catalog '%s' is valid: %s cards from %d records.\n",
			name, colorize.GreenString("%d", stats.Extracted), stats.Records)

		if stats.Skipped() > 0 {
			fmt.Fprintln(out, "\nSkipped:")
			fmt.Fprintf(out, "1. %s without an EDHREC rank\n", colorize.YellowString("%d", stats.Unranked))
			fmt.Fprintf(out, "2. %s without a current USD price\n", colorize.YellowString("%d", stats.Unpriced))
			fmt.Fprintf(out, "3. %s listing entries that are not objects\n", colorize.YellowString("%d", stats.NotObject))
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
