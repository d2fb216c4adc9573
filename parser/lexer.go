package parser

// Lexer turns a beancount buffer into tokens in a single pass.
//
// Tokens carry byte offsets into the source rather than copies of the text.
// Whitespace and comments are dropped; the parser relies on token line and
// column numbers to recover line structure and indentation.
type Lexer struct {
	source []byte
	pos    int     // Current byte position
	line   int     // Current line (1-indexed)
	column int     // Current column (1-indexed)
	tokens []Token // Token buffer (pre-allocated)
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source []byte) *Lexer {
	// Roughly one token per 20 bytes of ledger text
	estimatedTokens := len(source)/20 + 64

	return &Lexer{
		source: source,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, estimatedTokens),
	}
}

// ScanAll lexes the entire source and returns all tokens, terminated by EOF.
// Malformed input never stops the scan; it produces ILLEGAL tokens that the
// parser reports with their position.
func (l *Lexer) ScanAll() []Token {
	for l.pos < len(l.source) {
		l.skipWhitespace()

		if l.pos >= len(l.source) {
			break
		}

		switch {
		case l.peek() == ';':
			l.skipLine()
			continue
		case l.peek() == '*' && l.column == 1:
			// Org-mode heading
			l.skipLine()
			continue
		}

		l.tokens = append(l.tokens, l.scanToken())
	}

	l.tokens = append(l.tokens, Token{
		Type:   EOF,
		Start:  l.pos,
		End:    l.pos,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens
}

func (l *Lexer) scanToken() Token {
	start := l.pos
	startLine := l.line
	startCol := l.column

	tok := func(t TokenType) Token {
		return Token{t, start, l.pos, startLine, startCol}
	}

	ch := l.advance()

	switch {
	case isDigit(ch):
		// Dates share a prefix with numbers, so check them first
		if l.isDatePattern(start) {
			for i := 0; i < 9; i++ {
				l.advance()
			}
			return tok(DATE)
		}
		l.scanNumber()
		return tok(NUMBER)

	case ch == '"':
		if !l.scanString() {
			return tok(ILLEGAL)
		}
		return tok(STRING)

	case ch == '#':
		if isTagChar(l.peek()) {
			l.scanWhile(isTagChar)
			return tok(TAG)
		}
		return tok(HASH)

	case ch == '^':
		if isTagChar(l.peek()) {
			l.scanWhile(isTagChar)
			return tok(LINK)
		}
		return tok(ILLEGAL)

	case ch >= 'A' && ch <= 'Z' || ch >= 0x80:
		return tok(l.scanAccountOrIdent())

	case ch >= 'a' && ch <= 'z':
		l.scanWhile(isKeyChar)
		if t, ok := keywords[string(l.source[start:l.pos])]; ok {
			return tok(t)
		}
		return tok(IDENT)

	case ch == '*':
		return tok(ASTERISK)
	case ch == '!':
		return tok(EXCLAIM)
	case ch == ':':
		return tok(COLON)
	case ch == ',':
		return tok(COMMA)
	case ch == '+':
		return tok(PLUS)
	case ch == '-':
		return tok(MINUS)
	case ch == '/':
		return tok(SLASH)
	case ch == '(':
		return tok(LPAREN)
	case ch == ')':
		return tok(RPAREN)

	case ch == '{':
		if l.peek() == '{' {
			l.advance()
			return tok(LDBRACE)
		}
		return tok(LBRACE)

	case ch == '}':
		if l.peek() == '}' {
			l.advance()
			return tok(RDBRACE)
		}
		return tok(RBRACE)

	case ch == '@':
		if l.peek() == '@' {
			l.advance()
			return tok(ATAT)
		}
		return tok(AT)

	default:
		return tok(ILLEGAL)
	}
}

// isDatePattern checks for YYYY-MM-DD or YYYY/MM/DD at start. Both separators
// must be the same character.
func (l *Lexer) isDatePattern(start int) bool {
	if start+10 > len(l.source) {
		return false
	}

	src := l.source[start:]
	sep := src[4]
	if sep != '-' && sep != '/' {
		return false
	}
	return isDigit(src[0]) && isDigit(src[1]) && isDigit(src[2]) && isDigit(src[3]) &&
		isDigit(src[5]) && isDigit(src[6]) && src[7] == sep &&
		isDigit(src[8]) && isDigit(src[9])
}

// scanNumber consumes the rest of a number: digits with optional thousands
// separators and an optional fractional part. The first digit is consumed.
func (l *Lexer) scanNumber() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if isDigit(ch) {
			l.advance()
			continue
		}
		if ch == ',' && l.pos+1 < len(l.source) && isDigit(l.source[l.pos+1]) {
			l.advance()
			continue
		}
		break
	}

	if l.peek() == '.' && l.pos+1 < len(l.source) && isDigit(l.source[l.pos+1]) {
		l.advance()
		l.scanWhile(isDigit)
	}
}

// scanString consumes a quoted string after its opening quote. Strings may
// span lines. It returns false when the input ends before the closing quote.
func (l *Lexer) scanString() bool {
	for l.pos < len(l.source) {
		ch := l.advance()
		switch ch {
		case '"':
			return true
		case '\\':
			if l.pos < len(l.source) {
				l.advance()
			}
		}
	}
	return false
}

// scanAccountOrIdent scans an account name or an uppercase identifier. A
// colon anywhere in the word makes it an account.
func (l *Lexer) scanAccountOrIdent() TokenType {
	hasColon := false

	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if !isWordChar(ch) {
			break
		}
		if ch == ':' {
			hasColon = true
		}
		l.advance()
	}

	if hasColon {
		return ACCOUNT
	}
	return IDENT
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			break
		}
		l.advance()
	}
}

// skipLine skips to the end of the current line, newline excluded.
func (l *Lexer) skipLine() {
	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		l.pos++
		l.column++
	}
}

func (l *Lexer) scanWhile(accept func(byte) bool) {
	for l.pos < len(l.source) && accept(l.source[l.pos]) {
		l.advance()
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z'
}

func isTagChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch >= 0x80 ||
		ch == '-' || ch == '_' || ch == '/' || ch == '.'
}

func isKeyChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-' || ch == '_'
}

func isWordChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch >= 0x80 ||
		ch == ':' || ch == '-' || ch == '_' || ch == '.' || ch == '\''
}
