package parser

import (
	"github.com/robinvdvleuten/beanparse/ast"
)

// parseOpen parses an open directive.
//
//	2014-05-01 open Assets:Checking USD,EUR "FIFO"
func (p *Parser) parseOpen(pos ast.Position, date ast.Date) (*ast.Open, error) {
	if _, err := p.consume(OPEN, "expected 'open'"); err != nil {
		return nil, err
	}

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}

	open := &ast.Open{Pos: pos, Meta: ast.Metadata{}, Date: date, Account: account}

	if p.checkCurrency() {
		for {
			currency, err := p.parseCurrency()
			if err != nil {
				return nil, err
			}
			open.Currencies = append(open.Currencies, currency)

			if p.lineEnded() || !p.check(COMMA) {
				break
			}
			p.advance()
		}
	}

	if !p.lineEnded() && p.check(STRING) {
		tok := p.advance()
		booking, err := ast.ParseBooking(unquote(tok.Bytes(p.source)))
		if err != nil {
			return nil, wrapError(p.tokenPosition(tok), ErrInvalidBooking, err)
		}
		open.Booking = &booking
	}

	return open, p.expectLineEnd()
}

// parseClose parses a close directive.
//
//	2016-11-28 close Liabilities:CreditCard
func (p *Parser) parseClose(pos ast.Position, date ast.Date) (*ast.Close, error) {
	if _, err := p.consume(CLOSE, "expected 'close'"); err != nil {
		return nil, err
	}

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}

	return &ast.Close{Pos: pos, Meta: ast.Metadata{}, Date: date, Account: account}, p.expectLineEnd()
}

// parseCommodity parses a commodity directive.
//
//	2012-01-01 commodity HOOL
func (p *Parser) parseCommodity(pos ast.Position, date ast.Date) (*ast.Commodity, error) {
	if _, err := p.consume(COMMODITY, "expected 'commodity'"); err != nil {
		return nil, err
	}

	currency, err := p.parseCurrency()
	if err != nil {
		return nil, err
	}

	return &ast.Commodity{Pos: pos, Meta: ast.Metadata{}, Date: date, Currency: currency}, p.expectLineEnd()
}

// parsePad parses a pad directive.
//
//	2002-01-17 pad Assets:Checking Equity:Opening-Balances
func (p *Parser) parsePad(pos ast.Position, date ast.Date) (*ast.Pad, error) {
	if _, err := p.consume(PAD, "expected 'pad'"); err != nil {
		return nil, err
	}

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	source, err := p.parseAccount()
	if err != nil {
		return nil, err
	}

	return &ast.Pad{Pos: pos, Meta: ast.Metadata{}, Date: date, Account: account, SourceAccount: source}, p.expectLineEnd()
}

// parseBalance parses a balance assertion.
//
//	2014-08-09 balance Assets:Cash 562.00 USD
func (p *Parser) parseBalance(pos ast.Position, date ast.Date) (*ast.Balance, error) {
	if _, err := p.consume(BALANCE, "expected 'balance'"); err != nil {
		return nil, err
	}

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}

	amount, err := p.parseAmount("amount")
	if err != nil {
		return nil, err
	}

	return &ast.Balance{Pos: pos, Meta: ast.Metadata{}, Date: date, Account: account, Amount: amount}, p.expectLineEnd()
}

// parsePrice parses a price directive.
//
//	2014-07-09 price HOOL 579.18 USD
func (p *Parser) parsePrice(pos ast.Position, date ast.Date) (*ast.Price, error) {
	if _, err := p.consume(PRICE, "expected 'price'"); err != nil {
		return nil, err
	}

	currency, err := p.parseCurrency()
	if err != nil {
		return nil, err
	}

	amount, err := p.parseAmount("price amount")
	if err != nil {
		return nil, err
	}

	return &ast.Price{Pos: pos, Meta: ast.Metadata{}, Date: date, Currency: currency, Amount: amount}, p.expectLineEnd()
}

// parseEvent parses an event directive.
//
//	2014-07-09 event "location" "Paris, France"
func (p *Parser) parseEvent(pos ast.Position, date ast.Date) (*ast.Event, error) {
	if _, err := p.consume(EVENT, "expected 'event'"); err != nil {
		return nil, err
	}

	name, err := p.parseString("expected event name")
	if err != nil {
		return nil, err
	}
	description, err := p.parseString("expected event description")
	if err != nil {
		return nil, err
	}

	return &ast.Event{Pos: pos, Meta: ast.Metadata{}, Date: date, Name: name, Description: description}, p.expectLineEnd()
}

func (p *Parser) parseQuery(pos ast.Position, date ast.Date) (*ast.Query, error) {
	if _, err := p.consume(QUERY, "expected 'query'"); err != nil {
		return nil, err
	}

	name, err := p.parseString("expected query name")
	if err != nil {
		return nil, err
	}
	query, err := p.parseString("expected query string")
	if err != nil {
		return nil, err
	}

	return &ast.Query{Pos: pos, Meta: ast.Metadata{}, Date: date, Name: name, QueryString: query}, p.expectLineEnd()
}

// parseNote parses a note directive, which may end with tags and links.
//
//	2013-11-03 note Liabilities:CreditCard "Called about fraud" #fraud
func (p *Parser) parseNote(pos ast.Position, date ast.Date) (*ast.Note, error) {
	if _, err := p.consume(NOTE, "expected 'note'"); err != nil {
		return nil, err
	}

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	comment, err := p.parseString("expected note comment")
	if err != nil {
		return nil, err
	}

	note := &ast.Note{
		Pos:     pos,
		Meta:    ast.Metadata{},
		Date:    date,
		Account: account,
		Comment: comment,
		Tags:    ast.NewSet(),
		Links:   ast.NewSet(),
	}
	p.parseTagsAndLinks(note.Tags, note.Links)

	return note, p.expectLineEnd()
}

// parseDocument parses a document directive, which may end with tags and
// links.
//
//	2013-11-03 document Liabilities:CreditCard "/statements/apr-2014.pdf" ^apr
func (p *Parser) parseDocument(pos ast.Position, date ast.Date) (*ast.Document, error) {
	if _, err := p.consume(DOCUMENT, "expected 'document'"); err != nil {
		return nil, err
	}

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	filename, err := p.parseString("expected document path")
	if err != nil {
		return nil, err
	}

	doc := &ast.Document{
		Pos:      pos,
		Meta:     ast.Metadata{},
		Date:     date,
		Account:  account,
		Filename: filename,
		Tags:     ast.NewSet(),
		Links:    ast.NewSet(),
	}
	p.parseTagsAndLinks(doc.Tags, doc.Links)

	return doc, p.expectLineEnd()
}

// parseCustom parses a custom directive. Values are split on whitespace;
// tokens written without space between them form one value, so -5 or
// Assets:Cash stay whole.
//
//	2014-07-09 custom "budget" "monthly" TRUE 45.30 USD
func (p *Parser) parseCustom(pos ast.Position, date ast.Date) (*ast.Custom, error) {
	if _, err := p.consume(CUSTOM, "expected 'custom'"); err != nil {
		return nil, err
	}

	name, err := p.parseString("expected custom directive name")
	if err != nil {
		return nil, err
	}

	custom := &ast.Custom{Pos: pos, Meta: ast.Metadata{}, Date: date, Name: name}

	for !p.lineEnded() {
		first := p.advance()
		last := first
		for last.Type != ILLEGAL && !p.lineEnded() && p.peek().Start == last.End {
			last = p.advance()
		}
		if last.Type == ILLEGAL {
			return nil, newErrorf(p.tokenPosition(last), ErrSyntax, "invalid custom value: %s", p.describe(last))
		}

		if first == last && first.Type == STRING {
			custom.Values = append(custom.Values, unquote(first.Bytes(p.source)))
		} else {
			custom.Values = append(custom.Values, string(p.source[first.Start:last.End]))
		}
	}

	return custom, nil
}
