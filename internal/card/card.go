package card

import "github.com/shopspring/decimal"

// Card represents one catalog entry that survived extraction.
// Fields are read-only once constructed.
type Card struct {
	name     string          // Oracle name
	typeLine string          // Full type line (e.g. "Legendary Creature — Elf Druid")
	price    decimal.Decimal // Current USD list price
	rank     uint64          // EDHREC rank, lower is more popular
}

// New creates a Card from already-validated values
func New(name, typeLine string, price decimal.Decimal, rank uint64) Card {
	return Card{
		name:     name,
		typeLine: typeLine,
		price:    price,
		rank:     rank,
	}
}

func (c Card) Name() string           { return c.name }
func (c Card) TypeLine() string       { return c.typeLine }
func (c Card) Price() decimal.Decimal { return c.price }
func (c Card) Rank() uint64           { return c.rank }
