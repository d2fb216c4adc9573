package parser

import (
	"github.com/robinvdvleuten/beanparse/ast"
	"github.com/shopspring/decimal"
)

// costSyntax is a cost specification as written, before resolution.
type costSyntax struct {
	pos   ast.Position
	total bool // {{ ... }}

	hasAmount bool
	first     decimal.NullDecimal // number before '#'
	second    decimal.NullDecimal // number after '#'
	currency  string

	date  *ast.Date
	label *string
	merge bool
}

// priceSyntax is a price annotation as written.
type priceSyntax struct {
	pos    ast.Position
	total  bool // @@
	amount *ast.Amount
}

// parseCostSpec parses a cost specification:
//
//	{}  {*}  {100.00 USD}  {{1000.00 USD}}  {100.00 # 9.95 USD, 2014-05-01, "lot"}
//
// Components are separated by commas and may appear in any order, each at
// most once.
func (p *Parser) parseCostSpec() (*ast.CostSpec, error) {
	open := p.advance()
	c := &costSyntax{pos: p.tokenPosition(open), total: open.Type == LDBRACE}

	closing := RBRACE
	if c.total {
		closing = RDBRACE
	}

	if p.lineEnded() || !p.check(closing) {
		for {
			if err := p.parseCostComponent(c); err != nil {
				return nil, err
			}
			if p.lineEnded() || !p.check(COMMA) {
				break
			}
			p.advance()
		}
	}

	if _, err := p.consume(closing, "expected '"+closing.String()+"' to close cost"); err != nil {
		return nil, err
	}

	return resolveCostSpec(c)
}

func (p *Parser) parseCostComponent(c *costSyntax) error {
	if p.lineEnded() {
		return p.errorAtCurrent("expected cost component")
	}
	tok := p.peek()

	switch {
	case tok.Type == DATE:
		if c.date != nil {
			return newErrorf(p.tokenPosition(tok), ErrSyntax, "duplicate date in cost")
		}
		date, err := p.parseDate()
		if err != nil {
			return err
		}
		c.date = &date

	case tok.Type == STRING:
		if c.label != nil {
			return newErrorf(p.tokenPosition(tok), ErrSyntax, "duplicate label in cost")
		}
		label := unquote(p.advance().Bytes(p.source))
		c.label = &label

	case tok.Type == ASTERISK:
		if c.merge {
			return newErrorf(p.tokenPosition(tok), ErrSyntax, "duplicate merge marker in cost")
		}
		p.advance()
		c.merge = true

	case isExpressionStart(tok) || tok.Type == HASH || tok.Type == IDENT:
		if c.hasAmount {
			return newErrorf(p.tokenPosition(tok), ErrSyntax, "duplicate amount in cost")
		}
		return p.parseCompoundAmount(c)

	default:
		return p.errorAtCurrent("expected cost component")
	}

	return nil
}

// parseCompoundAmount parses "[number] [# [number]] [currency]".
func (p *Parser) parseCompoundAmount(c *costSyntax) error {
	c.hasAmount = true

	if !p.lineEnded() && isExpressionStart(p.peek()) {
		value, err := p.parseExpression()
		if err != nil {
			return err
		}
		c.first = decimal.NewNullDecimal(value)
	}

	if !p.lineEnded() && p.check(HASH) {
		p.advance()
		if !p.lineEnded() && isExpressionStart(p.peek()) {
			value, err := p.parseExpression()
			if err != nil {
				return err
			}
			c.second = decimal.NewNullDecimal(value)
		}
	}

	if !p.lineEnded() && p.check(IDENT) {
		currency, err := p.parseCurrency()
		if err != nil {
			return err
		}
		c.currency = currency
	}

	return nil
}

// resolveCostSpec turns cost syntax into a CostSpec. In the per-unit form the
// number before '#' is per unit and the one after is the total. In the total
// form the single number, if any, is the total; a number after '#' there
// would be a per-unit cost and is rejected.
func resolveCostSpec(c *costSyntax) (*ast.CostSpec, error) {
	spec := &ast.CostSpec{
		Currency: c.currency,
		Date:     c.date,
		Merge:    c.merge,
	}
	if c.label != nil {
		spec.Label = *c.label
	}

	if !c.total {
		spec.NumberPer = c.first
		spec.NumberTotal = c.second
		return spec, nil
	}

	if c.second.Valid {
		return nil, newErrorf(c.pos, ErrCostSpecConflict, "Per-unit cost may not be specified using total cost")
	}
	spec.NumberTotal = c.first
	return spec, nil
}

// parsePriceAnnotation parses "@ amount" or "@@ amount". The amount may be
// incomplete.
func (p *Parser) parsePriceAnnotation() (*priceSyntax, error) {
	at := p.advance()
	amount, err := p.parseIncompleteAmount()
	if err != nil {
		return nil, err
	}
	return &priceSyntax{pos: p.tokenPosition(at), total: at.Type == ATAT, amount: amount}, nil
}

// resolvePrice computes the per-unit price of a posting. A total price is
// divided by the absolute number of units. Without both numbers there is
// nothing to resolve and the price is left for inference.
func resolvePrice(units *ast.Amount, price *priceSyntax) (*ast.Amount, error) {
	if price == nil || !units.HasNumber() || !price.amount.HasNumber() {
		return nil, nil
	}

	if !price.total {
		return price.amount, nil
	}

	// Divided by the magnitude so a sale keeps a positive unit price.
	quantity := units.Number.Decimal.Abs()
	if quantity.IsZero() {
		return nil, newErrorf(price.pos, ErrInvalidDecimal, "cannot derive unit price from total price over zero units")
	}
	return ast.NewAmount(price.amount.Number.Decimal.Div(quantity), price.amount.Currency), nil
}
