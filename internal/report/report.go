package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/arcanaland/pricerank/internal/card"
	"github.com/arcanaland/pricerank/internal/query"
)

// DeckListQuantity is the copy count written in front of every deck list entry
const DeckListQuantity = 1

// WriteDump writes one "<price>, <rank>" line per row
func WriteDump(w io.Writer, rows []query.PriceRank) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := fmt.Fprintf(bw, "%s, %d\n", row.Price.String(), row.Rank); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDeckList writes cards as a deck list, one "1 <name>" line per card
func WriteDeckList(w io.Writer, cards []card.Card) error {
	bw := bufio.NewWriter(w)
	for _, c := range cards {
		if _, err := fmt.Fprintf(bw, "%d %s\n", DeckListQuantity, c.Name()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
