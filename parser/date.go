package parser

import (
	"fmt"
	"strconv"
	"time"

	"github.com/robinvdvleuten/beanparse/ast"
)

// ResolveDate builds a calendar date from its parts. Combinations that do not
// exist, such as February 30 or month 13, fail with ErrInvalidDate.
func ResolveDate(year, month, day int) (ast.Date, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes out-of-range values, so any change means the
	// triple was not a real date.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return ast.Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}

	return ast.Date{Time: t}, nil
}

// parseDate resolves a DATE token.
func (p *Parser) parseDate() (ast.Date, error) {
	tok, err := p.consume(DATE, "expected date")
	if err != nil {
		return ast.Date{}, err
	}

	text := tok.Bytes(p.source)
	year, _ := strconv.Atoi(string(text[0:4]))
	month, _ := strconv.Atoi(string(text[5:7]))
	day, _ := strconv.Atoi(string(text[8:10]))

	date, err := ResolveDate(year, month, day)
	if err != nil {
		return ast.Date{}, wrapError(p.tokenPosition(tok), ErrInvalidDate, err)
	}
	return date, nil
}
