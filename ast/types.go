package ast

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Date is a calendar date without a time component. The embedded time is
// always midnight UTC so that two dates for the same day compare equal.
type Date struct {
	time.Time
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Amount represents a numerical value with its associated currency or commodity symbol.
// The number is absent only for incomplete posting amounts, where it is inferred by a
// later stage.
//
// Example amounts:
//
//	100.00 USD
//	(40.00/3) + 5 EUR
//	USD               ; incomplete, number left for inference
type Amount struct {
	Number   decimal.NullDecimal
	Currency string
}

// NewAmount returns a complete amount.
func NewAmount(number decimal.Decimal, currency string) *Amount {
	return &Amount{Number: decimal.NewNullDecimal(number), Currency: currency}
}

// HasNumber reports whether the amount carries a numeric value.
func (a *Amount) HasNumber() bool {
	return a != nil && a.Number.Valid
}

// String renders the amount as "<number> <currency>", omitting missing parts.
func (a *Amount) String() string {
	if a == nil {
		return ""
	}
	var parts []string
	if a.Number.Valid {
		parts = append(parts, FormatDecimal(a.Number.Decimal))
	}
	if a.Currency != "" {
		parts = append(parts, a.Currency)
	}
	return strings.Join(parts, " ")
}

// FormatDecimal renders d keeping every fractional digit it carries, so that
// "2.00" stays "2.00" instead of collapsing to "2".
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Metadata holds the key/value pairs attached to a directive or posting. Values
// are kept as strings: quoted values are unquoted, everything else is the raw
// source text.
type Metadata map[string]string

// Keys returns the metadata keys in sorted order.
func (m Metadata) Keys() []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Set is an unordered collection of tag or link names, stored without their
// leading '#' or '^'.
type Set map[string]struct{}

// NewSet returns a set holding the given items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add inserts item into the set.
func (s Set) Add(item string) {
	s[item] = struct{}{}
}

// Has reports whether item is present.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Sorted returns the items in lexical order.
func (s Set) Sorted() []string {
	items := maps.Keys(s)
	slices.Sort(items)
	return items
}
