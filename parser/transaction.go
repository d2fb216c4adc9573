package parser

import (
	"github.com/robinvdvleuten/beanparse/ast"
)

// parseTransaction parses a transaction header and its indented body.
//
//	2014-05-05 * "Cafe Mogador" "Lamb tagine with wine" #trip
//	  receipt: "42"
//	  Liabilities:CreditCard   -37.45 USD
//	    category: "food"
//	  Expenses:Restaurant
//
// The body holds postings, metadata lines and lines of tags or links, in any
// order. A metadata line indented deeper than the posting before it belongs
// to that posting; otherwise it belongs to the transaction.
func (p *Parser) parseTransaction(pos ast.Position, date ast.Date) (*ast.Transaction, error) {
	txn := &ast.Transaction{
		Pos:   pos,
		Meta:  ast.Metadata{},
		Date:  date,
		Tags:  ast.NewSet(),
		Links: ast.NewSet(),
	}

	flag := p.advance()
	if flag.Type == TXN {
		txn.Flag = "*"
	} else {
		txn.Flag = flag.String(p.source)
	}

	var strs []string
	for !p.lineEnded() && p.check(STRING) {
		if len(strs) == 2 {
			return nil, newErrorf(p.tokenPosition(p.peek()), ErrSyntax,
				"too many strings in transaction header, expected payee and narration")
		}
		strs = append(strs, unquote(p.advance().Bytes(p.source)))
	}
	switch len(strs) {
	case 1:
		txn.Narration = strs[0]
	case 2:
		txn.Payee = strs[0]
		txn.Narration = strs[1]
	}

	p.parseTagsAndLinks(txn.Tags, txn.Links)
	if err := p.expectLineEnd(); err != nil {
		return nil, err
	}

	var last *ast.Posting
	for !p.isAtEnd() && p.peek().Column > 1 {
		p.beginLine()
		tok := p.peek()

		switch {
		case p.isMetadataStart():
			key, value, err := p.parseMetadataLine()
			if err != nil {
				return nil, err
			}
			if last != nil && tok.Column > last.Pos.Column {
				last.Meta[key] = value
			} else {
				txn.Meta[key] = value
			}

		case tok.Type == TAG || tok.Type == LINK:
			p.parseTagsAndLinks(txn.Tags, txn.Links)
			if err := p.expectLineEnd(); err != nil {
				return nil, err
			}

		case tok.Type == ACCOUNT || tok.Type == ASTERISK || tok.Type == EXCLAIM:
			posting, err := p.parsePosting()
			if err != nil {
				return nil, err
			}
			txn.Postings = append(txn.Postings, posting)
			last = posting

		default:
			return nil, newErrorf(p.tokenPosition(tok), ErrSyntax,
				"expected posting, metadata or tags, got %s", p.describe(tok))
		}

		if p.pos == p.lineStart {
			return nil, newErrorf(p.tokenPosition(tok), ErrSyntax,
				"unexpected %s in transaction body", p.describe(tok))
		}
	}

	p.tags.apply(txn.Tags)

	return txn, nil
}

// parsePosting parses one posting line:
//
//	[flag] Account [units] [cost] [@ price | @@ total-price]
func (p *Parser) parsePosting() (*ast.Posting, error) {
	start := p.peek()
	posting := &ast.Posting{
		Pos:  p.tokenPosition(start),
		Meta: ast.Metadata{},
	}

	if start.Type == ASTERISK || start.Type == EXCLAIM {
		posting.Flag = p.advance().String(p.source)
	}

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	posting.Account = account

	units, err := p.parseIncompleteAmount()
	if err != nil {
		return nil, err
	}
	posting.Units = units

	if !p.lineEnded() && (p.check(LBRACE) || p.check(LDBRACE)) {
		cost, err := p.parseCostSpec()
		if err != nil {
			return nil, err
		}
		posting.Cost = cost
	}

	if !p.lineEnded() && (p.check(AT) || p.check(ATAT)) {
		annotation, err := p.parsePriceAnnotation()
		if err != nil {
			return nil, err
		}
		price, err := resolvePrice(units, annotation)
		if err != nil {
			return nil, err
		}
		posting.Price = price
	}

	return posting, p.expectLineEnd()
}
