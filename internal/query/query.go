package query

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arcanaland/pricerank/internal/card"
)

// PriceRank is one row of the price/rank dump
type PriceRank struct {
	Price decimal.Decimal
	Rank  uint64
}

// Dump projects every card to its price and rank, keeping input order
func Dump(cards []card.Card) []PriceRank {
	rows := make([]PriceRank, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, PriceRank{Price: c.Price(), Rank: c.Rank()})
	}
	return rows
}

// TopOptions selects the cards returned by TopCardsUnderPrice
type TopOptions struct {
	NumCards   uint64
	MaxPrice   decimal.Decimal
	TypeFilter *string // case-sensitive substring of the type line, nil for any
}

// TopCardsUnderPrice returns the NumCards most popular cards costing at
// most MaxPrice whose type line contains TypeFilter. Cards with equal rank
// keep their input order. The input slice is not modified.
func TopCardsUnderPrice(cards []card.Card, opts TopOptions) []card.Card {
	kept := make([]card.Card, 0, len(cards))
	for _, c := range cards {
		if c.Price().GreaterThan(opts.MaxPrice) {
			continue
		}
		if opts.TypeFilter != nil && !strings.Contains(c.TypeLine(), *opts.TypeFilter) {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Rank() < kept[j].Rank()
	})

	if uint64(len(kept)) > opts.NumCards {
		kept = kept[:opts.NumCards]
	}
	return kept
}
