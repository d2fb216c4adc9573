package parser

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/beanparse/ast"
)

// Error kinds. Every *ParseError matches exactly one of them with errors.Is.
var (
	ErrSyntax           = errors.New("syntax error")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDecimal   = errors.New("invalid decimal")
	ErrInvalidBooking   = errors.New("invalid booking method")
	ErrUnbalancedTags   = errors.New("unbalanced pushed tags")
	ErrAbsentTag        = errors.New("pop of absent tag")
	ErrUnbalancedMeta   = errors.New("unbalanced pushed metadata")
	ErrAbsentMeta       = errors.New("pop of absent metadata key")
	ErrCostSpecConflict = errors.New("cost specification conflict")
	ErrMissingField     = errors.New("missing required field")
)

// ParseError is the error returned for any input the parser rejects. A parse
// stops at the first error, so there is never more than one.
type ParseError struct {
	Pos        ast.Position
	Kind       error
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// GetPosition returns where in the source the error was detected.
func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

// Is matches the error's kind.
func (e *ParseError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

func newErrorf(pos ast.Position, kind error, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     pos,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// wrapError turns err into a ParseError of the given kind at pos.
func wrapError(pos ast.Position, kind error, err error) *ParseError {
	return &ParseError{
		Pos:        pos,
		Kind:       kind,
		Message:    err.Error(),
		Underlying: err,
	}
}
