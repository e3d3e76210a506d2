// Package catalog turns a Scryfall bulk card export into Card values.
package catalog

import (
	"errors"
	"os"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/arcanaland/pricerank/internal/card"
	"github.com/arcanaland/pricerank/internal/jsonvalue"
)

// Keys read from each card object
const (
	fieldName     = "name"
	fieldTypeLine = "type_line"
	fieldPrices   = "prices"
	fieldRank     = "edhrec_rank"
	fieldUSD      = "usd"
)

var consumedFields = []string{fieldName, fieldTypeLine, fieldPrices, fieldRank}

// Stats counts what happened to each element of the listing.
// Records == Extracted + Unranked + Unpriced + NotObject.
type Stats struct {
	Records   int // elements in the listing
	Extracted int // cards produced
	Unranked  int // skipped, no edhrec_rank
	Unpriced  int // skipped, no current USD price
	NotObject int // skipped, element is not an object
}

// Skipped returns the number of elements that produced no card
func (s Stats) Skipped() int {
	return s.Unranked + s.Unpriced + s.NotObject
}

// LoadFile reads and extracts a whole catalog file
func LoadFile(path string) ([]card.Card, Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Stats{}, &IOError{Path: path, Err: err}
	}

	if !utf8.Valid(data) {
		return nil, Stats{}, &ParseError{Path: path, Err: ErrInvalidUTF8}
	}

	root, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, Stats{}, &ParseError{Path: path, Err: err}
	}

	return Extract(root)
}

// Extract walks a parsed listing and returns the cards that carry both a
// rank and a current USD price, in listing order. Cards without a rank or
// without a price are skipped. Any other problem with a record aborts the
// whole extraction.
func Extract(root jsonvalue.Value) ([]card.Card, Stats, error) {
	listing, err := root.AsArray()
	if err != nil {
		return nil, Stats{}, &StructureError{Got: root.Kind()}
	}

	var stats Stats
	cards := make([]card.Card, 0, len(listing))

	for i, item := range listing {
		stats.Records++

		object, err := item.AsObject()
		if err != nil {
			stats.NotObject++
			continue
		}

		c, ok, err := extractCard(i, object, &stats)
		if err != nil {
			return nil, Stats{}, err
		}
		if !ok {
			continue
		}

		cards = append(cards, c)
		stats.Extracted++
	}

	return cards, stats, nil
}

// extractCard decodes one card object. ok is false when the card is
// skipped by one of the silent rules.
func extractCard(index int, object *jsonvalue.Members, stats *Stats) (c card.Card, ok bool, err error) {
	nameValue, hasName := object.Get(fieldName)
	typeLineValue, hasTypeLine := object.Get(fieldTypeLine)
	pricesValue, hasPrices := object.Get(fieldPrices)
	rankValue, hasRank := object.Get(fieldRank)

	// Unranked cards are usually not legal in commander
	if !hasRank {
		stats.Unranked++
		return card.Card{}, false, nil
	}

	malformed := func(field string, cause error) error {
		return &MalformedRecordError{
			Index:    index,
			Field:    field,
			Residual: object.Without(consumedFields...).String(),
			Err:      cause,
		}
	}

	switch {
	case !hasName:
		return card.Card{}, false, malformed(fieldName, ErrMissingField)
	case !hasTypeLine:
		return card.Card{}, false, malformed(fieldTypeLine, ErrMissingField)
	case !hasPrices:
		return card.Card{}, false, malformed(fieldPrices, ErrMissingField)
	}

	name, err := nameValue.AsString()
	if err != nil {
		return card.Card{}, false, malformed(fieldName, err)
	}

	typeLine, err := typeLineValue.AsString()
	if err != nil {
		return card.Card{}, false, malformed(fieldTypeLine, err)
	}

	rank, err := rankValue.AsUint()
	if err != nil {
		var typeErr *jsonvalue.TypeError
		if errors.As(err, &typeErr) {
			return card.Card{}, false, malformed(fieldRank, err)
		}
		return card.Card{}, false, &NumericFormatError{Field: fieldRank, Text: rankValue.String(), Err: err}
	}

	prices, err := pricesValue.AsObject()
	if err != nil {
		return card.Card{}, false, malformed(fieldPrices, err)
	}

	// No usd entry means the card has no current list price
	usdValue, hasUSD := prices.Get(fieldUSD)
	if !hasUSD || usdValue.IsNull() {
		stats.Unpriced++
		return card.Card{}, false, nil
	}

	usd, err := usdValue.AsString()
	if err != nil {
		return card.Card{}, false, malformed(fieldPrices+"."+fieldUSD, err)
	}

	price, err := ParsePrice(fieldPrices+"."+fieldUSD, usd)
	if err != nil {
		return card.Card{}, false, err
	}

	return card.New(name, typeLine, price, rank), true, nil
}

// ParsePrice parses decimal text as a non-negative price. field names the
// source of the text in the returned *NumericFormatError.
func ParsePrice(field, text string) (decimal.Decimal, error) {
	price, err := ParseDecimal(field, text)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if price.IsNegative() {
		return decimal.Decimal{}, &NumericFormatError{Field: field, Text: text, Err: ErrNegativePrice}
	}
	return price, nil
}

// Bounds on parsed decimals. Comparing or printing a decimal scales its
// coefficient by the exponent.
const (
	maxDecimalExponent = 64
	maxDecimalDigits   = 64
)

// ParseDecimal parses decimal text whose exponent and digit count stay
// within maxDecimalExponent and maxDecimalDigits. field names the source of
// the text in the returned *NumericFormatError.
func ParseDecimal(field, text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, &NumericFormatError{Field: field, Text: text, Err: err}
	}

	exp := d.Exponent()
	if exp > maxDecimalExponent || exp < -maxDecimalExponent || d.NumDigits() > maxDecimalDigits {
		return decimal.Decimal{}, &NumericFormatError{Field: field, Text: text, Err: ErrDecimalOutOfRange}
	}
	return d, nil
}
