package ast

import "github.com/shopspring/decimal"

// Kind identifies the variant of a Directive.
type Kind uint8

const (
	KindOpen Kind = iota
	KindClose
	KindCommodity
	KindTransaction
	KindPad
	KindBalance
	KindPrice
	KindEvent
	KindPlugin
	KindOption
	KindCustom
	KindNote
	KindDocument
	KindQuery
)

var kindNames = [...]string{
	KindOpen:        "open",
	KindClose:       "close",
	KindCommodity:   "commodity",
	KindTransaction: "transaction",
	KindPad:         "pad",
	KindBalance:     "balance",
	KindPrice:       "price",
	KindEvent:       "event",
	KindPlugin:      "plugin",
	KindOption:      "option",
	KindCustom:      "custom",
	KindNote:        "note",
	KindDocument:    "document",
	KindQuery:       "query",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Directive is one top-level statement of a ledger. The set of implementations
// is closed; switch on the concrete type or on Kind() to handle each variant.
type Directive interface {
	Kind() Kind
	Position() Position
	// Metadata returns the directive's metadata. It is nil only for Plugin.
	Metadata() Metadata

	directive()
}

// Open declares an account and the date from which it may be used. An optional
// list of currencies constrains what the account can hold, and an optional
// booking method declares how lots are matched when reducing positions.
//
// Example:
//
//	2014-05-01 open Assets:US:BofA:Checking  USD
//	2014-05-01 open Assets:US:ETrade:Main    USD,GOOG  "FIFO"
type Open struct {
	Pos        Position
	Meta       Metadata
	Date       Date
	Account    string
	Currencies []string
	Booking    *Booking
}

var _ Directive = &Open{}

func (*Open) Kind() Kind { return KindOpen }
func (o *Open) Position() Position { return o.Pos }
func (o *Open) Metadata() Metadata { return o.Meta }
func (*Open) directive() {}

// Close marks an account as inactive from the given date.
//
// Example:
//
//	2016-11-28 close Liabilities:CreditCard:CapitalOne
type Close struct {
	Pos     Position
	Meta    Metadata
	Date    Date
	Account string
}

var _ Directive = &Close{}

func (*Close) Kind() Kind { return KindClose }
func (c *Close) Position() Position { return c.Pos }
func (c *Close) Metadata() Metadata { return c.Meta }
func (*Close) directive() {}

// Commodity declares a currency or commodity, usually to hang metadata on it.
//
// Example:
//
//	2012-01-01 commodity HOOL
//	  name: "Hooli Corporation Class C Shares"
//	  asset-class: "stock"
type Commodity struct {
	Pos      Position
	Meta     Metadata
	Date     Date
	Currency string
}

var _ Directive = &Commodity{}

func (*Commodity) Kind() Kind { return KindCommodity }
func (c *Commodity) Position() Position { return c.Pos }
func (c *Commodity) Metadata() Metadata { return c.Meta }
func (*Commodity) directive() {}

// Pad inserts whatever amount is needed into Account, taken from SourceAccount,
// so that the next balance assertion on Account succeeds.
//
// Example:
//
//	2002-01-17 pad Assets:US:BofA:Checking Equity:Opening-Balances
type Pad struct {
	Pos           Position
	Meta          Metadata
	Date          Date
	Account       string
	SourceAccount string
}

var _ Directive = &Pad{}

func (*Pad) Kind() Kind { return KindPad }
func (p *Pad) Position() Position { return p.Pos }
func (p *Pad) Metadata() Metadata { return p.Meta }
func (*Pad) directive() {}

// Balance asserts the amount of a commodity held by an account at the
// beginning of the given date.
//
// Tolerance and DiffAmount are never set by the parser. They are filled in by
// the stages that check the assertion.
//
// Example:
//
//	2014-08-09 balance Assets:Cash  562.00 USD
type Balance struct {
	Pos        Position
	Meta       Metadata
	Date       Date
	Account    string
	Amount     *Amount
	Tolerance  decimal.NullDecimal
	DiffAmount *Amount
}

var _ Directive = &Balance{}

func (*Balance) Kind() Kind { return KindBalance }
func (b *Balance) Position() Position { return b.Pos }
func (b *Balance) Metadata() Metadata { return b.Meta }
func (*Balance) directive() {}

// Price records the price of a currency in terms of another at a date.
//
// Example:
//
//	2014-07-09 price HOOL  579.18 USD
type Price struct {
	Pos      Position
	Meta     Metadata
	Date     Date
	Currency string
	Amount   *Amount
}

var _ Directive = &Price{}

func (*Price) Kind() Kind { return KindPrice }
func (p *Price) Position() Position { return p.Pos }
func (p *Price) Metadata() Metadata { return p.Meta }
func (*Price) directive() {}

// Event records the value of a named variable from a date onwards.
//
// Example:
//
//	2014-07-09 event "location" "Paris, France"
type Event struct {
	Pos         Position
	Meta        Metadata
	Date        Date
	Name        string
	Description string
}

var _ Directive = &Event{}

func (*Event) Kind() Kind { return KindEvent }
func (e *Event) Position() Position { return e.Pos }
func (e *Event) Metadata() Metadata { return e.Meta }
func (*Event) directive() {}

// Plugin names a processing module to run over the parsed entries, with an
// optional configuration string that is empty when absent. Plugins carry
// neither a date nor metadata.
//
// Example:
//
//	plugin "beancount.plugins.module_name" "configuration data"
type Plugin struct {
	Pos    Position
	Module string
	Config string
}

var _ Directive = &Plugin{}

func (*Plugin) Kind() Kind { return KindPlugin }
func (p *Plugin) Position() Position { return p.Pos }
func (*Plugin) Metadata() Metadata { return nil }
func (*Plugin) directive() {}

// Option sets a named configuration value for the ledger.
//
// Example:
//
//	option "title" "Ed's Personal Ledger"
type Option struct {
	Pos   Position
	Meta  Metadata
	Name  string
	Value string
}

var _ Directive = &Option{}

func (*Option) Kind() Kind { return KindOption }
func (o *Option) Position() Position { return o.Pos }
func (o *Option) Metadata() Metadata { return o.Meta }
func (*Option) directive() {}

// Custom is a user-defined dated directive. Values keep their source order.
// Quoted values are unquoted, everything else is kept as written.
//
// Example:
//
//	2014-07-09 custom "budget" "some_config_opt_for_custom_directive" TRUE 45.30 USD
type Custom struct {
	Pos    Position
	Meta   Metadata
	Date   Date
	Name   string
	Values []string
}

var _ Directive = &Custom{}

func (*Custom) Kind() Kind { return KindCustom }
func (c *Custom) Position() Position { return c.Pos }
func (c *Custom) Metadata() Metadata { return c.Meta }
func (*Custom) directive() {}

// Note attaches a dated comment to an account.
//
// Example:
//
//	2013-11-03 note Liabilities:CreditCard "Called about fraudulent card."
type Note struct {
	Pos     Position
	Meta    Metadata
	Date    Date
	Account string
	Comment string
	Tags    Set
	Links   Set
}

var _ Directive = &Note{}

func (*Note) Kind() Kind { return KindNote }
func (n *Note) Position() Position { return n.Pos }
func (n *Note) Metadata() Metadata { return n.Meta }
func (*Note) directive() {}

// Document associates an external file with an account.
//
// Example:
//
//	2013-11-03 document Liabilities:CreditCard "/home/joe/stmts/apr-2014.pdf"
type Document struct {
	Pos      Position
	Meta     Metadata
	Date     Date
	Account  string
	Filename string
	Tags     Set
	Links    Set
}

var _ Directive = &Document{}

func (*Document) Kind() Kind { return KindDocument }
func (d *Document) Position() Position { return d.Pos }
func (d *Document) Metadata() Metadata { return d.Meta }
func (*Document) directive() {}

// Query stores a named query to be run against the ledger.
//
// Example:
//
//	2014-07-09 query "france-balances" "
//	  SELECT account, sum(position) WHERE 'trip-france-2014' in tags"
type Query struct {
	Pos         Position
	Meta        Metadata
	Date        Date
	Name        string
	QueryString string
}

var _ Directive = &Query{}

func (*Query) Kind() Kind { return KindQuery }
func (q *Query) Position() Position { return q.Pos }
func (q *Query) Metadata() Metadata { return q.Meta }
func (*Query) directive() {}
