package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/robinvdvleuten/beanparse/ast"
)

// Token navigation

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAhead(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) previous() Token {
	if p.pos == 0 {
		return Token{}
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) check(t TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

// consume advances past a token of type t on the current line, or fails with
// a syntax error carrying msg.
func (p *Parser) consume(t TokenType, msg string) (Token, error) {
	if p.lineEnded() || !p.check(t) {
		return Token{}, p.errorAtCurrent(msg)
	}
	return p.advance(), nil
}

// endLine returns the line on which tok ends. Only strings span lines.
func (p *Parser) endLine(tok Token) int {
	if tok.Type != STRING {
		return tok.Line
	}
	return tok.Line + bytes.Count(tok.Bytes(p.source), []byte{'\n'})
}

// beginLine marks the next token as the first of a new source line, so the
// line is not reported as ended before anything on it is read.
func (p *Parser) beginLine() {
	p.lineStart = p.pos
}

// lineEnded reports whether the next token starts after the line the
// previous token ended on. It is false at the start of a line opened with
// beginLine.
func (p *Parser) lineEnded() bool {
	if p.isAtEnd() {
		return true
	}
	if p.pos == 0 || p.pos == p.lineStart {
		return false
	}
	return p.peek().Line > p.endLine(p.previous())
}

// expectLineEnd fails if anything other than a comment follows on the line.
func (p *Parser) expectLineEnd() error {
	if p.lineEnded() {
		return nil
	}
	return p.errorAtCurrent("expected end of line")
}

// Positions and errors

func (p *Parser) tokenPosition(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Start,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

// describe names a token for error messages.
func (p *Parser) describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return "end of file"
	case ILLEGAL:
		if bytes.HasPrefix(tok.Bytes(p.source), []byte{'"'}) {
			return "unterminated string"
		}
		return "illegal character " + strconv.Quote(tok.String(p.source))
	case STRING:
		return "string"
	case DATE, ACCOUNT, NUMBER, IDENT, TAG, LINK:
		return strings.ToLower(tok.Type.String()) + " " + strconv.Quote(tok.String(p.source))
	default:
		return strconv.Quote(tok.String(p.source))
	}
}

// errorAtCurrent reports a syntax error at the next token, or at the end of
// the current line when the line is exhausted.
func (p *Parser) errorAtCurrent(msg string) error {
	if p.lineEnded() && p.pos > 0 {
		prev := p.previous()
		pos := p.tokenPosition(prev)
		pos.Column += prev.Len()
		pos.Offset = prev.End
		return newErrorf(pos, ErrSyntax, "%s, got end of line", msg)
	}
	tok := p.peek()
	return newErrorf(p.tokenPosition(tok), ErrSyntax, "%s, got %s", msg, p.describe(tok))
}

// Primitives

// parseAccount consumes and validates an account name.
func (p *Parser) parseAccount() (string, error) {
	tok, err := p.consume(ACCOUNT, "expected account")
	if err != nil {
		return "", err
	}
	text := tok.Bytes(p.source)
	if err := validateAccount(text); err != nil {
		return "", wrapError(p.tokenPosition(tok), ErrSyntax, err)
	}
	return p.interner.InternBytes(text), nil
}

// parseCurrency consumes and validates a currency.
func (p *Parser) parseCurrency() (string, error) {
	tok, err := p.consume(IDENT, "expected currency")
	if err != nil {
		return "", err
	}
	text := tok.Bytes(p.source)
	if !isCurrency(text) {
		return "", newErrorf(p.tokenPosition(tok), ErrSyntax, "invalid currency %q", text)
	}
	return p.interner.InternBytes(text), nil
}

// checkCurrency reports whether the next token on the line is a currency.
func (p *Parser) checkCurrency() bool {
	return !p.lineEnded() && p.check(IDENT) && isCurrency(p.peek().Bytes(p.source))
}

func (p *Parser) parseString(msg string) (string, error) {
	tok, err := p.consume(STRING, msg)
	if err != nil {
		return "", err
	}
	return unquote(tok.Bytes(p.source)), nil
}

// parseTagsAndLinks consumes any tags and links left on the current line.
func (p *Parser) parseTagsAndLinks(tags, links ast.Set) {
	for !p.lineEnded() {
		switch p.peek().Type {
		case TAG:
			tags.Add(string(p.advance().Bytes(p.source)[1:]))
		case LINK:
			links.Add(string(p.advance().Bytes(p.source)[1:]))
		default:
			return
		}
	}
}

// parseAmount parses a complete amount: an expression followed by a
// currency. field names the amount in the missing-field error.
func (p *Parser) parseAmount(field string) (*ast.Amount, error) {
	if p.lineEnded() || !isExpressionStart(p.peek()) {
		return nil, p.missingField(field)
	}
	number, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.checkCurrency() {
		return nil, p.missingField(field + " currency")
	}
	currency, err := p.parseCurrency()
	if err != nil {
		return nil, err
	}
	return ast.NewAmount(number, currency), nil
}

// parseIncompleteAmount parses an amount whose number, currency or both may
// be missing. It returns nil when neither is present.
func (p *Parser) parseIncompleteAmount() (*ast.Amount, error) {
	var amount ast.Amount
	present := false

	if !p.lineEnded() && isExpressionStart(p.peek()) {
		number, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		amount.Number.Decimal = number
		amount.Number.Valid = true
		present = true
	}

	if p.checkCurrency() {
		currency, err := p.parseCurrency()
		if err != nil {
			return nil, err
		}
		amount.Currency = currency
		present = true
	}

	if !present {
		return nil, nil
	}
	return &amount, nil
}

func (p *Parser) missingField(field string) error {
	pos := p.tokenPosition(p.peek())
	if p.lineEnded() {
		prev := p.previous()
		pos = p.tokenPosition(prev)
		pos.Column += prev.Len()
		pos.Offset = prev.End
	}
	return newErrorf(pos, ErrMissingField, "missing %s", field)
}

// Metadata

// isMetadataStart reports whether the next tokens form "key:" with the colon
// directly after a lowercase key.
func (p *Parser) isMetadataStart() bool {
	key := p.peek()
	if key.Type != IDENT && !key.Type.IsKeyword() {
		return false
	}
	if b := key.Bytes(p.source); len(b) == 0 || b[0] < 'a' || b[0] > 'z' {
		return false
	}
	colon := p.peekAhead(1)
	return colon.Type == COLON && colon.Start == key.End
}

// parseMetadataLine parses "key: value". A value made of a single string is
// unquoted; any other value is kept as its raw source text.
func (p *Parser) parseMetadataLine() (key, value string, err error) {
	keyTok := p.advance()
	p.advance() // colon
	key = keyTok.String(p.source)

	if p.lineEnded() {
		return key, "", nil
	}

	first := p.peek()
	last := first
	for !p.lineEnded() {
		tok := p.advance()
		if tok.Type == ILLEGAL {
			return "", "", newErrorf(p.tokenPosition(tok), ErrSyntax,
				"invalid metadata value for %q: %s", key, p.describe(tok))
		}
		last = tok
	}

	if first == last && first.Type == STRING {
		return key, unquote(first.Bytes(p.source)), nil
	}
	return key, string(p.source[first.Start:last.End]), nil
}

// parseMetadata parses the indented "key: value" lines following a
// directive header into meta.
func (p *Parser) parseMetadata(meta ast.Metadata) error {
	for !p.isAtEnd() && p.peek().Column > 1 && p.isMetadataStart() {
		p.beginLine()
		key, value, err := p.parseMetadataLine()
		if err != nil {
			return err
		}
		meta[key] = value
	}
	return nil
}

// Validation and text helpers

// validateAccount checks an account name: at least two colon-separated
// components, each starting with an uppercase letter (or a digit after the
// root) and containing only letters, digits and dashes. Bytes above 0x7F are
// accepted as letters.
func validateAccount(name []byte) error {
	parts := bytes.Split(name, []byte{':'})
	if len(parts) < 2 {
		return fmt.Errorf("account %q must have at least two components", name)
	}

	for i, part := range parts {
		if len(part) == 0 {
			return fmt.Errorf("account %q has an empty component", name)
		}
		first := part[0]
		switch {
		case first >= 'A' && first <= 'Z', first >= 0x80:
		case i > 0 && isDigit(first):
		default:
			return fmt.Errorf("account component %q must start with an uppercase letter", part)
		}
		for _, ch := range part[1:] {
			if !isLetter(ch) && !isDigit(ch) && ch != '-' && ch < 0x80 {
				return fmt.Errorf("account component %q contains invalid character %q", part, ch)
			}
		}
	}
	return nil
}

// isCurrency matches [A-Z][A-Z0-9'._-]{0,22}[A-Z0-9], or a single uppercase
// letter.
func isCurrency(text []byte) bool {
	n := len(text)
	if n == 0 || n > 24 {
		return false
	}
	if text[0] < 'A' || text[0] > 'Z' {
		return false
	}
	last := text[n-1]
	if n > 1 && !(last >= 'A' && last <= 'Z' || isDigit(last)) {
		return false
	}
	for _, ch := range text[1:] {
		switch {
		case ch >= 'A' && ch <= 'Z', isDigit(ch):
		case ch == '\'', ch == '.', ch == '_', ch == '-':
		default:
			return false
		}
	}
	return true
}

// unquote strips the surrounding quotes from a string token and resolves
// the escapes \" \\ \n and \t. Other backslashes are kept as written.
func unquote(text []byte) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	if bytes.IndexByte(text, '\\') < 0 {
		return string(text)
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '\\' || i+1 == len(text) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch text[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte('\\')
			b.WriteByte(text[i])
		}
	}
	return b.String()
}
