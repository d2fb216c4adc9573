package parser

import (
	"strings"

	"github.com/robinvdvleuten/beanparse/ast"
)

// render prints a parsed file in a canonical form: one directive per line,
// metadata keys sorted, tags and links sorted, prices per unit and cost specs
// in their braced per-unit form. Source location keys are left out so that
// the output of a re-parse renders identically.
func render(file *ast.File) string {
	var b strings.Builder
	for _, path := range file.Includes {
		b.WriteString("include " + quote(path) + "\n")
	}
	for _, d := range file.Directives {
		renderDirective(&b, d)
	}
	return b.String()
}

func renderDirective(b *strings.Builder, d ast.Directive) {
	switch d := d.(type) {
	case *ast.Open:
		b.WriteString(d.Date.String() + " open " + d.Account)
		if len(d.Currencies) > 0 {
			b.WriteString(" " + strings.Join(d.Currencies, ","))
		}
		if d.Booking != nil {
			b.WriteString(" " + quote(d.Booking.String()))
		}
	case *ast.Close:
		b.WriteString(d.Date.String() + " close " + d.Account)
	case *ast.Commodity:
		b.WriteString(d.Date.String() + " commodity " + d.Currency)
	case *ast.Pad:
		b.WriteString(d.Date.String() + " pad " + d.Account + " " + d.SourceAccount)
	case *ast.Balance:
		b.WriteString(d.Date.String() + " balance " + d.Account + " " + d.Amount.String())
	case *ast.Price:
		b.WriteString(d.Date.String() + " price " + d.Currency + " " + d.Amount.String())
	case *ast.Event:
		b.WriteString(d.Date.String() + " event " + quote(d.Name) + " " + quote(d.Description))
	case *ast.Query:
		b.WriteString(d.Date.String() + " query " + quote(d.Name) + " " + quote(d.QueryString))
	case *ast.Note:
		b.WriteString(d.Date.String() + " note " + d.Account + " " + quote(d.Comment))
		renderTagsAndLinks(b, d.Tags, d.Links)
	case *ast.Document:
		b.WriteString(d.Date.String() + " document " + d.Account + " " + quote(d.Filename))
		renderTagsAndLinks(b, d.Tags, d.Links)
	case *ast.Custom:
		b.WriteString(d.Date.String() + " custom " + quote(d.Name))
		for _, value := range d.Values {
			b.WriteString(" " + renderCustomValue(value))
		}
	case *ast.Option:
		b.WriteString("option " + quote(d.Name) + " " + quote(d.Value) + "\n")
		return
	case *ast.Plugin:
		b.WriteString("plugin " + quote(d.Module))
		if d.Config != "" {
			b.WriteString(" " + quote(d.Config))
		}
		b.WriteString("\n")
		return
	case *ast.Transaction:
		renderTransaction(b, d)
		return
	}
	b.WriteString("\n")
	renderMetadata(b, d.Metadata(), "  ")
}

func renderTransaction(b *strings.Builder, txn *ast.Transaction) {
	b.WriteString(txn.Date.String() + " " + txn.Flag)
	if txn.Payee != "" {
		b.WriteString(" " + quote(txn.Payee))
	}
	b.WriteString(" " + quote(txn.Narration))
	renderTagsAndLinks(b, txn.Tags, txn.Links)
	b.WriteString("\n")
	renderMetadata(b, txn.Meta, "  ")

	for _, posting := range txn.Postings {
		b.WriteString("  ")
		if posting.Flag != "" {
			b.WriteString(posting.Flag + " ")
		}
		b.WriteString(posting.Account)
		if posting.Units != nil {
			b.WriteString(" " + posting.Units.String())
		}
		if spec, ok := posting.Cost.(*ast.CostSpec); ok {
			b.WriteString(" " + renderCostSpec(spec))
		}
		if posting.Price != nil {
			b.WriteString(" @ " + posting.Price.String())
		}
		b.WriteString("\n")
		renderMetadata(b, posting.Meta, "    ")
	}
}

func renderCostSpec(spec *ast.CostSpec) string {
	var components []string

	var amount []string
	if spec.NumberPer.Valid {
		amount = append(amount, ast.FormatDecimal(spec.NumberPer.Decimal))
	}
	if spec.NumberTotal.Valid {
		amount = append(amount, "#", ast.FormatDecimal(spec.NumberTotal.Decimal))
	}
	if spec.Currency != "" {
		amount = append(amount, spec.Currency)
	}
	if len(amount) > 0 {
		components = append(components, strings.Join(amount, " "))
	}
	if spec.Date != nil {
		components = append(components, spec.Date.String())
	}
	if spec.Label != "" {
		components = append(components, quote(spec.Label))
	}
	if spec.Merge {
		components = append(components, "*")
	}

	return "{" + strings.Join(components, ", ") + "}"
}

func renderTagsAndLinks(b *strings.Builder, tags, links ast.Set) {
	for _, tag := range tags.Sorted() {
		b.WriteString(" #" + tag)
	}
	for _, link := range links.Sorted() {
		b.WriteString(" ^" + link)
	}
}

func renderMetadata(b *strings.Builder, meta ast.Metadata, indent string) {
	for _, key := range meta.Keys() {
		if key == "lineno" || key == "filename" {
			continue
		}
		b.WriteString(indent + key + ": " + quote(meta[key]) + "\n")
	}
}

// renderCustomValue writes a value bare when it lexes back into one run of
// adjacent tokens, and quotes it otherwise.
func renderCustomValue(value string) string {
	source := []byte(value)
	tokens := NewLexer(source).ScanAll()

	end := 0
	for _, tok := range tokens[:len(tokens)-1] {
		if tok.Start != end || tok.Type == ILLEGAL || tok.Type == STRING {
			return quote(value)
		}
		end = tok.End
	}
	if end == 0 || end != len(source) {
		return quote(value)
	}
	return value
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
