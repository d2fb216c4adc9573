package parser

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Arithmetic expressions may appear anywhere a number is expected:
//
//	Assets:Cash   (40.00/3) + 5 USD
//
// Grammar, lowest precedence first:
//
//	expression := term (('+' | '-') term)*
//	term       := factor (('*' | '/') factor)*
//	factor     := NUMBER | '-' factor | '+' factor | '(' expression ')'
//
// Operators of equal precedence associate to the left. All arithmetic is done
// in decimal; division rounds to decimal.DivisionPrecision places. Operators
// only continue an expression on the line where it started.

// EvaluateExpression evaluates a standalone numeric expression. Anything that
// is not a complete expression fails with ErrInvalidDecimal.
func EvaluateExpression(expr string) (decimal.Decimal, error) {
	source := []byte(expr)
	p := newParser(source, "")
	p.tokens = NewLexer(source).ScanAll()

	value, err := p.parseExpression()
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !p.isAtEnd() {
		tok := p.peek()
		return decimal.Decimal{}, newErrorf(p.tokenPosition(tok), ErrInvalidDecimal,
			"unexpected %s after expression", p.describe(tok))
	}
	return value, nil
}

// isExpressionStart reports whether tok can begin an expression.
func isExpressionStart(tok Token) bool {
	switch tok.Type {
	case NUMBER, MINUS, PLUS, LPAREN:
		return true
	}
	return false
}

func (p *Parser) parseExpression() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Decimal{}, err
	}

	for !p.lineEnded() && (p.check(PLUS) || p.check(MINUS)) {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return decimal.Decimal{}, err
		}
		if op.Type == PLUS {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}

	return left, nil
}

func (p *Parser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Decimal{}, err
	}

	for !p.lineEnded() && (p.check(ASTERISK) || p.check(SLASH)) {
		op := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return decimal.Decimal{}, err
		}
		if op.Type == ASTERISK {
			left = left.Mul(right)
			continue
		}
		if right.IsZero() {
			return decimal.Decimal{}, newErrorf(p.tokenPosition(op), ErrInvalidDecimal, "division by zero")
		}
		left = left.Div(right)
	}

	return left, nil
}

func (p *Parser) parseFactor() (decimal.Decimal, error) {
	tok := p.peek()
	if p.lineEnded() {
		return decimal.Decimal{}, newErrorf(p.tokenPosition(tok), ErrInvalidDecimal,
			"expected number, got end of line")
	}

	switch tok.Type {
	case NUMBER:
		p.advance()
		return p.parseNumber(tok)

	case MINUS:
		p.advance()
		value, err := p.parseFactor()
		if err != nil {
			return decimal.Decimal{}, err
		}
		return value.Neg(), nil

	case PLUS:
		p.advance()
		return p.parseFactor()

	case LPAREN:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return decimal.Decimal{}, err
		}
		if p.lineEnded() || !p.check(RPAREN) {
			return decimal.Decimal{}, newErrorf(p.tokenPosition(p.peek()), ErrInvalidDecimal,
				"expected ')' to close expression opened at column %d", tok.Column)
		}
		p.advance()
		return value, nil

	default:
		return decimal.Decimal{}, newErrorf(p.tokenPosition(tok), ErrInvalidDecimal,
			"expected number, got %s", p.describe(tok))
	}
}

// parseNumber converts a NUMBER token, dropping thousands separators.
func (p *Parser) parseNumber(tok Token) (decimal.Decimal, error) {
	text := tok.Bytes(p.source)
	if bytes.IndexByte(text, ',') >= 0 {
		text = bytes.ReplaceAll(text, []byte(","), nil)
	}

	value, err := decimal.NewFromString(string(text))
	if err != nil {
		return decimal.Decimal{}, wrapError(p.tokenPosition(tok), ErrInvalidDecimal, err)
	}
	return value, nil
}
