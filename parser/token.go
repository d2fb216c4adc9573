package parser

// TokenType classifies a lexed token.
type TokenType uint8

const (
	EOF TokenType = iota
	// ILLEGAL marks an unterminated string or a byte no token starts with.
	ILLEGAL

	// Reserved words, see keywords
	TXN
	BALANCE
	OPEN
	CLOSE
	COMMODITY
	PAD
	NOTE
	DOCUMENT
	PRICE
	EVENT
	QUERY
	CUSTOM
	OPTION
	INCLUDE
	PLUGIN
	PUSHTAG
	POPTAG
	PUSHMETA
	POPMETA

	DATE    // 2014-05-01 or 2014/05/01
	ACCOUNT // any word containing a colon
	STRING  // double-quoted, may span lines
	NUMBER  // unsigned, 1,234.56
	IDENT   // currencies, metadata keys, TRUE
	TAG     // #trip
	LINK    // ^receipt-42

	ASTERISK
	EXCLAIM
	COLON
	COMMA
	AT
	ATAT
	LBRACE
	RBRACE
	LDBRACE
	RDBRACE
	PLUS
	MINUS
	SLASH
	LPAREN
	RPAREN
	HASH // '#' not followed by a tag character
)

var keywords = map[string]TokenType{
	"txn":       TXN,
	"balance":   BALANCE,
	"open":      OPEN,
	"close":     CLOSE,
	"commodity": COMMODITY,
	"pad":       PAD,
	"note":      NOTE,
	"document":  DOCUMENT,
	"price":     PRICE,
	"event":     EVENT,
	"query":     QUERY,
	"custom":    CUSTOM,
	"option":    OPTION,
	"include":   INCLUDE,
	"plugin":    PLUGIN,
	"pushtag":   PUSHTAG,
	"poptag":    POPTAG,
	"pushmeta":  PUSHMETA,
	"popmeta":   POPMETA,
}

// tokenNames holds the class name of literals and the text of symbols.
// Keyword entries are filled in from keywords.
var tokenNames = [...]string{
	EOF: "EOF", ILLEGAL: "ILLEGAL",

	DATE: "DATE", ACCOUNT: "ACCOUNT", STRING: "STRING", NUMBER: "NUMBER",
	IDENT: "IDENT", TAG: "TAG", LINK: "LINK",

	ASTERISK: "*", EXCLAIM: "!", COLON: ":", COMMA: ",",
	AT: "@", ATAT: "@@",
	LBRACE: "{", RBRACE: "}", LDBRACE: "{{", RDBRACE: "}}",
	PLUS: "+", MINUS: "-", SLASH: "/", LPAREN: "(", RPAREN: ")",
	HASH: "#",
}

func init() {
	for word, t := range keywords {
		tokenNames[t] = word
	}
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "UNKNOWN"
}

// IsKeyword reports whether t is one of the reserved lowercase words.
func (t TokenType) IsKeyword() bool {
	return t >= TXN && t <= POPMETA
}

// Token is a span of the source. The text is not copied; use Bytes or
// String with the buffer that was lexed.
type Token struct {
	Type   TokenType
	Start  int // offset of the first byte
	End    int // offset past the last byte
	Line   int // 1-based
	Column int // 1-based, counted in bytes
}

// Bytes returns the token text as a subslice of source.
func (t Token) Bytes(source []byte) []byte {
	if t.Start > t.End || t.End > len(source) {
		return nil
	}
	return source[t.Start:t.End]
}

// String returns a copy of the token text.
func (t Token) String(source []byte) string {
	return string(t.Bytes(source))
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
