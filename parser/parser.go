// Package parser turns beancount source text into an *ast.File.
//
// The parser is a hand-written recursive-descent parser over the token
// stream produced by Lexer. It is strict: the first problem found aborts the
// parse and is returned as a *ParseError, and no partial result is returned.
//
// Example usage:
//
//	file, err := parser.Parse(source)
//	if err != nil {
//		var perr *parser.ParseError
//		if errors.As(err, &perr) {
//			fmt.Println(perr.Pos, perr.Message)
//		}
//		return err
//	}
//	for _, d := range file.Directives {
//		...
//	}
//
// Includes are recorded as paths only; reading and parsing included files is
// up to the caller.
package parser

import (
	"context"
	"strconv"

	"github.com/robinvdvleuten/beanparse/ast"
	"github.com/robinvdvleuten/beanparse/telemetry"
)

// Parser holds the state of a single parse. Create one per buffer; it is not
// safe for concurrent use and is not reused.
type Parser struct {
	source    []byte
	filename  string
	tokens    []Token
	pos       int
	lineStart int // index of the first token on the current line
	interner  *Interner
	tags      *tagScope
	meta      *metaScope
	file      *ast.File
}

// Option configures a parse.
type Option func(*Parser)

// WithFilename records name in error positions and in a "filename"
// metadata entry on every directive that carries metadata.
func WithFilename(name string) Option {
	return func(p *Parser) {
		p.filename = name
	}
}

func newParser(source []byte, filename string) *Parser {
	internerCap := len(source) / 40
	if internerCap < 64 {
		internerCap = 64
	}

	return &Parser{
		source:   source,
		filename: filename,
		interner: NewInterner(internerCap),
		tags:     newTagScope(),
		meta:     newMetaScope(),
		file:     &ast.File{},
	}
}

// Parse parses a complete beancount buffer.
func Parse(content string) (*ast.File, error) {
	return ParseBytes(context.Background(), []byte(content))
}

// ParseString parses content, recording timings on any telemetry collector
// carried by ctx.
func ParseString(ctx context.Context, content string, opts ...Option) (*ast.File, error) {
	return ParseBytes(ctx, []byte(content), opts...)
}

// ParseBytes parses data. The buffer is not retained after the call returns.
func ParseBytes(ctx context.Context, data []byte, opts ...Option) (*ast.File, error) {
	timer := telemetry.StartTimer(ctx, "parser.parse")
	defer timer.End()

	p := newParser(data, "")
	for _, opt := range opts {
		opt(p)
	}

	lexTimer := timer.Child("parser.lex")
	p.tokens = NewLexer(data).ScanAll()
	lexTimer.End()

	buildTimer := timer.Child("parser.build")
	defer buildTimer.End()

	return p.Parse()
}

// Parse runs the parser over its token stream and assembles the file.
func (p *Parser) Parse() (*ast.File, error) {
	for !p.isAtEnd() {
		start := p.pos
		if err := p.parseEntry(); err != nil {
			return nil, err
		}
		if p.pos == start {
			return nil, newErrorf(p.tokenPosition(p.peek()), ErrSyntax, "unexpected %s", p.describe(p.peek()))
		}
	}

	eof := p.tokenPosition(p.peek())
	if tags := p.tags.unbalanced(); len(tags) > 0 {
		return nil, newErrorf(eof, ErrUnbalancedTags, "Unbalanced pushed tag(s): %s", quoteList(tags))
	}
	if keys := p.meta.unbalanced(); len(keys) > 0 {
		return nil, newErrorf(eof, ErrUnbalancedMeta, "Unbalanced pushed metadata key(s): %s", quoteList(keys))
	}

	return p.file, nil
}

// parseEntry parses one top-level line: a dated directive or a pragma.
func (p *Parser) parseEntry() error {
	p.beginLine()
	tok := p.peek()
	pos := p.tokenPosition(tok)

	if tok.Column != 1 {
		return newErrorf(pos, ErrSyntax, "unexpected indented %s at top level", p.describe(tok))
	}

	switch tok.Type {
	case DATE:
		directive, err := p.parseDated()
		if err != nil {
			return err
		}
		p.file.Directives = append(p.file.Directives, directive)
		return nil

	case OPTION:
		return p.parseOption(pos)
	case INCLUDE:
		return p.parseInclude()
	case PLUGIN:
		return p.parsePlugin(pos)
	case PUSHTAG, POPTAG:
		return p.parseTagPragma()
	case PUSHMETA, POPMETA:
		return p.parseMetaPragma()

	default:
		return newErrorf(pos, ErrSyntax, "expected directive, got %s", p.describe(tok))
	}
}

// parseDated parses a directive that starts with a date, followed by its
// indented metadata.
func (p *Parser) parseDated() (ast.Directive, error) {
	start := p.peek()
	pos := p.tokenPosition(start)

	date, err := p.parseDate()
	if err != nil {
		return nil, err
	}

	if p.lineEnded() {
		return nil, p.errorAtCurrent("expected directive after date")
	}

	var directive ast.Directive

	switch p.peek().Type {
	case TXN, ASTERISK, EXCLAIM:
		// Transactions read their own body, metadata included
		txn, err := p.parseTransaction(pos, date)
		if err != nil {
			return nil, err
		}
		p.finishMetadata(txn.Meta, start)
		return txn, nil
	case OPEN:
		directive, err = p.parseOpen(pos, date)
	case CLOSE:
		directive, err = p.parseClose(pos, date)
	case COMMODITY:
		directive, err = p.parseCommodity(pos, date)
	case PAD:
		directive, err = p.parsePad(pos, date)
	case BALANCE:
		directive, err = p.parseBalance(pos, date)
	case PRICE:
		directive, err = p.parsePrice(pos, date)
	case EVENT:
		directive, err = p.parseEvent(pos, date)
	case QUERY:
		directive, err = p.parseQuery(pos, date)
	case NOTE:
		directive, err = p.parseNote(pos, date)
	case DOCUMENT:
		directive, err = p.parseDocument(pos, date)
	case CUSTOM:
		directive, err = p.parseCustom(pos, date)
	default:
		return nil, p.errorAtCurrent("expected directive keyword after date")
	}
	if err != nil {
		return nil, err
	}

	meta := directive.Metadata()
	if err := p.parseMetadata(meta); err != nil {
		return nil, err
	}
	p.finishMetadata(meta, start)

	return directive, nil
}

// finishMetadata adds pushed metadata and the source location keys. Written
// metadata wins over pushed values; lineno always reflects the source.
func (p *Parser) finishMetadata(meta ast.Metadata, start Token) {
	p.meta.apply(meta)
	p.locate(meta, start)
}

func (p *Parser) locate(meta ast.Metadata, start Token) {
	if p.filename != "" {
		meta["filename"] = p.filename
	}
	meta["lineno"] = strconv.Itoa(start.Line)
}

// parseOption parses `option "name" "value"`.
func (p *Parser) parseOption(pos ast.Position) error {
	start := p.advance()

	name, err := p.parseString("expected option name")
	if err != nil {
		return err
	}
	value, err := p.parseString("expected option value")
	if err != nil {
		return err
	}
	if err := p.expectLineEnd(); err != nil {
		return err
	}

	option := &ast.Option{Pos: pos, Meta: ast.Metadata{}, Name: name, Value: value}
	p.locate(option.Meta, start)

	p.file.Options = append(p.file.Options, option)
	p.file.Directives = append(p.file.Directives, option)
	return nil
}

// parseInclude parses `include "path"`. The path is recorded, not read.
func (p *Parser) parseInclude() error {
	p.advance()

	path, err := p.parseString("expected include path")
	if err != nil {
		return err
	}
	if err := p.expectLineEnd(); err != nil {
		return err
	}

	p.file.Includes = append(p.file.Includes, path)
	return nil
}

// parsePlugin parses `plugin "module" ["config"]`.
func (p *Parser) parsePlugin(pos ast.Position) error {
	p.advance()

	module, err := p.parseString("expected plugin module name")
	if err != nil {
		return err
	}

	plugin := &ast.Plugin{Pos: pos, Module: module}
	if !p.lineEnded() && p.check(STRING) {
		plugin.Config = unquote(p.advance().Bytes(p.source))
	}
	if err := p.expectLineEnd(); err != nil {
		return err
	}

	p.file.Directives = append(p.file.Directives, plugin)
	return nil
}

// parseTagPragma handles pushtag and poptag.
func (p *Parser) parseTagPragma() error {
	keyword := p.advance()

	tok, err := p.consume(TAG, "expected tag")
	if err != nil {
		return err
	}
	if err := p.expectLineEnd(); err != nil {
		return err
	}

	tag := string(tok.Bytes(p.source)[1:])
	if keyword.Type == PUSHTAG {
		p.tags.push(tag)
		return nil
	}

	if !p.tags.pop(tag) {
		return newErrorf(p.tokenPosition(tok), ErrAbsentTag, "Attempting to pop absent tag: '%s'", tag)
	}
	return nil
}

// parseMetaPragma handles `pushmeta key: value` and `popmeta key:`.
func (p *Parser) parseMetaPragma() error {
	keyword := p.advance()

	if p.lineEnded() || !p.isMetadataStart() {
		return p.errorAtCurrent("expected metadata key")
	}
	keyTok := p.peek()
	key, value, err := p.parseMetadataLine()
	if err != nil {
		return err
	}

	if keyword.Type == PUSHMETA {
		p.meta.push(key, value)
		return nil
	}

	if value != "" {
		return newErrorf(p.tokenPosition(keyTok), ErrSyntax, "popmeta takes a key only, got value %q", value)
	}
	if !p.meta.pop(key) {
		return newErrorf(p.tokenPosition(keyTok), ErrAbsentMeta, "Attempting to pop absent metadata key: '%s'", key)
	}
	return nil
}
