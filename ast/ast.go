// Package ast defines the typed representation of a parsed beancount buffer.
//
// A parse produces one File holding the include paths, the options and the
// directives in source order. Nothing in the package performs I/O or keeps
// state between parses; values are built once by the parser and not modified
// afterwards.
package ast

// File is the result of parsing a single buffer.
type File struct {
	// Includes lists the include paths verbatim, in source order. They are
	// not resolved or read.
	Includes []string
	// Options holds every option directive in source order. The same values
	// also appear in Directives.
	Options    []*Option
	Directives []Directive
}

// Option returns the value of the last option with the given name.
func (f *File) Option(name string) (string, bool) {
	for i := len(f.Options) - 1; i >= 0; i-- {
		if f.Options[i].Name == name {
			return f.Options[i].Value, true
		}
	}
	return "", false
}

// Transactions returns the transactions of the file in source order.
func (f *File) Transactions() []*Transaction {
	var txns []*Transaction
	for _, d := range f.Directives {
		if txn, ok := d.(*Transaction); ok {
			txns = append(txns, txn)
		}
	}
	return txns
}
