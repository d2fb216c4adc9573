// Package errors renders parse errors for people and for programs.
//
// TextFormatter prints the error followed by the offending source lines and a
// caret under the reported column, in the style of bean-check. JSONFormatter
// emits a stable structure for editors and other tools.
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/robinvdvleuten/beanparse/ast"
	"github.com/robinvdvleuten/beanparse/output"
	"github.com/robinvdvleuten/beanparse/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positioned is implemented by errors that know where they occurred.
type positioned interface {
	GetPosition() ast.Position
	Error() string
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	source      []byte
	styles      *output.Styles
	linesBefore int
	linesAfter  int
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source the errors refer to. Without it only the
// message is printed.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.source = source
	}
}

// WithStyles enables terminal styling.
func WithStyles(styles *output.Styles) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.styles = styles
	}
}

// WithContextLines sets how many source lines are shown around the error
// line.
func WithContextLines(before, after int) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.linesBefore = before
		tf.linesAfter = after
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{linesBefore: 2, linesAfter: 1}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	var perr *parser.ParseError
	if stderrors.As(err, &perr) {
		return tf.formatWithSourceContext(perr.Pos, err.Error())
	}

	var e positioned
	if stderrors.As(err, &e) {
		return tf.formatWithSourceContext(e.GetPosition(), err.Error())
	}

	return tf.styles.Message(err.Error())
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = tf.Format(err)
	}
	return strings.Join(parts, "\n\n")
}

// formatWithSourceContext writes the message, then the source lines around
// pos with a caret under the error column.
func (tf *TextFormatter) formatWithSourceContext(pos ast.Position, message string) string {
	if tf.source == nil || pos.Line < 1 {
		return tf.styles.Message(message)
	}

	var buf bytes.Buffer
	buf.WriteString(tf.styles.Message(message))
	buf.WriteString("\n\n")

	lines := strings.Split(string(tf.source), "\n")

	// pos.Line is 1-based, indexes are 0-based
	first := max(pos.Line-1-tf.linesBefore, 0)
	last := min(pos.Line-1+tf.linesAfter, len(lines)-1)

	for i := first; i <= last; i++ {
		buf.WriteString("   ")
		buf.WriteString(tf.styles.Context(lines[i]))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(caretPadding(lines[i], pos.Column))
			buf.WriteString(tf.styles.Caret("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// caretPadding returns the whitespace that puts a caret under column on
// line. Columns count bytes, so the padding is measured in display cells and
// tabs are copied as they are.
func caretPadding(line string, column int) string {
	prefix := line[:min(column-1, len(line))]

	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	if column-1 > len(line) {
		b.WriteString(strings.Repeat(" ", column-1-len(line)))
	}
	return b.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string        `json:"type"`
	Kind     string        `json:"kind,omitempty"`
	Message  string        `json:"message"`
	Position *PositionJSON `json:"position,omitempty"`
}

// PositionJSON represents a source position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	var perr *parser.ParseError
	if stderrors.As(err, &perr) {
		errJSON.Type = fmt.Sprintf("%T", perr)
		errJSON.Message = perr.Message
		if perr.Kind != nil {
			errJSON.Kind = perr.Kind.Error()
		}
	}

	var e positioned
	if stderrors.As(err, &e) {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	return errJSON
}
