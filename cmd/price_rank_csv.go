package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/pricerank/internal/card"
	"github.com/arcanaland/pricerank/internal/catalog"
	"github.com/arcanaland/pricerank/internal/query"
	"github.com/arcanaland/pricerank/internal/report"
)

// priceRankCmd represents the price_rank_csv command
var priceRankCmd = &cobra.Command{
	Use:   "price_rank_csv [scryfall_json_input]",
	Short: "Print price and EDHREC rank of every priced card",
	Long: `Price_rank_csv prints one "<price>, <edhrec_rank>" line for every card
that has both an EDHREC rank and a current USD price, in file order.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := loadCatalog(args[0])
		if err != nil {
			return err
		}

		var out bytes.Buffer
		if err := report.WriteDump(&out, query.Dump(cards)); err != nil {
			return fmt.Errorf("error writing report: %w", err)
		}

		_, err = out.WriteTo(cmd.OutOrStdout())
		return err
	},
}

func init() {
	RootCmd.AddCommand(priceRankCmd)
}

// loadCatalog resolves, reads and extracts a catalog export
func loadCatalog(name string) ([]card.Card, error) {
	cards, stats, err := loadCatalogStats(name)
	if err != nil {
		return nil, err
	}

	if skipped := stats.Skipped(); skipped > 0 {
		logger.Info("skipped cards",
			zap.Int("unranked", stats.Unranked),
			zap.Int("unpriced", stats.Unpriced),
			zap.Int("not_object", stats.NotObject))
	}
	return cards, nil
}

func loadCatalogStats(name string) ([]card.Card, catalog.Stats, error) {
	path := cfg.ResolveCatalogPath(name)
	logger.Debug("loading catalog", zap.String("path", path))

	cards, stats, err := catalog.LoadFile(path)
	if err != nil {
		return nil, catalog.Stats{}, err
	}

	logger.Debug("extracted catalog",
		zap.String("path", path),
		zap.Int("records", stats.Records),
		zap.Int("cards", stats.Extracted))
	return cards, stats, nil
}
