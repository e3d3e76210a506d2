package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/pricerank/internal/jsonvalue"
)

var (
	ErrMissingField  = errors.New("missing required field")
	ErrNegativePrice = errors.New("price must not be negative")

	ErrDecimalOutOfRange = errors.New("decimal exponent or precision out of range")
	ErrInvalidUTF8       = errors.New("input is not valid UTF-8")
)

// IOError reports that the catalog file could not be read
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read input file %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports that the catalog file is not well-formed JSON
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse json in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StructureError reports that the document is not an array of card objects
type StructureError struct {
	Got jsonvalue.Kind
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("expected array of card objects, got %s", e.Got)
}

// MalformedRecordError reports a ranked card record that is missing a
// required field or holds a field of the wrong type. Residual holds the
// record's remaining content with the consumed fields removed.
type MalformedRecordError struct {
	Index    int
	Field    string
	Residual string
	Err      error
}

func (e *MalformedRecordError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "card object %d has wrong formatting: field %q", e.Index, e.Field)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	fmt.Fprintf(&b, " (remaining: %s)", e.Residual)
	return b.String()
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// NumericFormatError reports text that does not hold the expected kind of
// number. It is used for in-record prices and ranks as well as numeric
// command-line arguments.
type NumericFormatError struct {
	Field string
	Text  string
	Err   error
}

func (e *NumericFormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Text, e.Err)
}

func (e *NumericFormatError) Unwrap() error { return e.Err }
