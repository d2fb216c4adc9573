package ast

// Transaction records a financial event as a set of postings. The flag is '*'
// for completed transactions and '!' for ones that need review; the txn
// keyword is shorthand for '*'.
//
// Payee is empty when the header holds a single string, which is then the
// narration. Tags include every tag pushed with pushtag at the point the
// transaction appears in the file.
//
// Example:
//
//	2014-05-05 * "Cafe Mogador" "Lamb tagine with wine" #trip ^receipt-42
//	  Liabilities:CreditCard:CapitalOne         -37.45 USD
//	  Expenses:Restaurant
type Transaction struct {
	Pos       Position
	Meta      Metadata
	Date      Date
	Flag      string
	Payee     string
	Narration string
	Tags      Set
	Links     Set
	Postings  []*Posting
}

var _ Directive = &Transaction{}

func (*Transaction) Kind() Kind { return KindTransaction }
func (t *Transaction) Position() Position { return t.Pos }
func (t *Transaction) Metadata() Metadata { return t.Meta }
func (*Transaction) directive() {}

// Posting is a single leg of a transaction. Units may be nil or incomplete,
// leaving the amount to be inferred by balancing. Cost is always a *CostSpec
// when produced by the parser. Price is the per-unit price, already divided
// down when the source used the total-price form @@.
//
// Example postings:
//
//	Assets:US:ETrade:IVV          -10 IVV {183.07 USD} @@ 1979.00 USD
//	! Expenses:Restaurant          37.45 USD
type Posting struct {
	Pos     Position
	Meta    Metadata
	Flag    string
	Account string
	Units   *Amount
	Cost    PostingCost
	Price   *Amount
}
