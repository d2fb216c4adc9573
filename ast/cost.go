package ast

import "github.com/shopspring/decimal"

// PostingCost is the cost attached to a posting. It is either a *CostSpec, as
// written in the source, or a *Cost resolved against a concrete lot.
type PostingCost interface {
	postingCost()
}

// CostSpec is the cost basis as declared between braces on a posting. Nothing
// in it has been matched against an inventory yet. An empty spec {} selects any
// lot; a merge spec {*} averages all lots together.
//
// Example cost specifications:
//
//	10 HOOL {518.73 USD}              ; per-unit cost
//	10 HOOL {{5187.30 USD}}           ; total cost
//	10 HOOL {502.12 # 9.95 USD}       ; per-unit plus total component
//	10 HOOL {518.73 USD, 2014-05-01}  ; with acquisition date
//	-5 HOOL {502.12 USD, "first-lot"} ; with lot label
//	10 HOOL {*}                       ; merge
type CostSpec struct {
	NumberPer   decimal.NullDecimal
	NumberTotal decimal.NullDecimal
	Currency    string
	Date        *Date
	Label       string
	Merge       bool
}

var _ PostingCost = &CostSpec{}

func (*CostSpec) postingCost() {}

// IsEmpty reports whether this is the empty cost specification {}.
func (c *CostSpec) IsEmpty() bool {
	return c != nil && !c.NumberPer.Valid && !c.NumberTotal.Valid && c.Currency == "" &&
		c.Date == nil && c.Label == "" && !c.Merge
}

// Cost is a resolved single-lot cost.
type Cost struct {
	Date     Date
	Number   decimal.Decimal
	Currency string
	Label    string
}

var _ PostingCost = &Cost{}

func (*Cost) postingCost() {}
