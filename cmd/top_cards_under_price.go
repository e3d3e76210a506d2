package cmd

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/pricerank/internal/catalog"
	"github.com/arcanaland/pricerank/internal/query"
	"github.com/arcanaland/pricerank/internal/report"
)

// topCardsCmd represents the top_cards_under_price command
var topCardsCmd = &cobra.Command{
	Use:   "top_cards_under_price [scryfall_json_input] [num_cards] [max_price] [type_line_text]",
	Short: "Print the most popular cards at or under a price as a deck list",
	Long: `Top_cards_under_price keeps the cards priced at or under max_price whose
type line contains type_line_text (case-sensitive, optional), sorts them by
EDHREC rank and prints the first num_cards as "1 <name>" deck list lines.

Examples:
  pricerank top_cards_under_price oracle-cards.json 100 0.50
  pricerank top_cards_under_price oracle-cards.json 30 2 "Legendary Creature"`,
	Args: usageArgs(cobra.RangeArgs(3, 4)),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parseTopOptions(args[1:])
		if err != nil {
			return err
		}

		cards, err := loadCatalog(args[0])
		if err != nil {
			return err
		}

		top := query.TopCardsUnderPrice(cards, opts)
		logger.Debug("selected cards",
			zap.Int("candidates", len(cards)),
			zap.Int("selected", len(top)))

		var out bytes.Buffer
		if err := report.WriteDeckList(&out, top); err != nil {
			return fmt.Errorf("error writing report: %w", err)
		}

		_, err = out.WriteTo(cmd.OutOrStdout())
		return err
	},
}

func init() {
	RootCmd.AddCommand(topCardsCmd)

	// Arguments after the input path are positional even when they start
	// with "-", e.g. a negative max_price.
	topCardsCmd.Flags().SetInterspersed(false)
}

// parseTopOptions reads num_cards, max_price and the optional type filter
func parseTopOptions(args []string) (query.TopOptions, error) {
	numCards, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return query.TopOptions{}, &catalog.NumericFormatError{Field: "num_cards", Text: args[0], Err: err}
	}

	maxPrice, err := catalog.ParseDecimal("max_price", args[1])
	if err != nil {
		return query.TopOptions{}, err
	}

	opts := query.TopOptions{
		NumCards: numCards,
		MaxPrice: maxPrice,
	}
	if len(args) > 2 {
		filter := args[2]
		opts.TypeFilter = &filter
	}
	return opts, nil
}
