package render

import (
	"strings"

	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

// printer accumulates one rendered statement. The first error sticks and
// stops further output from mattering.
type printer struct {
	dialect *dialect.Dialect
	output  strings.Builder
	args    []any
	err     error
}

func newPrinter(d *dialect.Dialect) *printer {
	return &printer{dialect: d}
}

// String returns the rendered SQL.
func (p *printer) String() string {
	return p.output.String()
}

func (p *printer) write(s string) {
	p.output.WriteString(s)
}

func (p *printer) space() {
	p.output.WriteByte(' ')
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// unsupported records an UnsupportedError for feature.
func (p *printer) unsupported(feature string) {
	p.fail(&UnsupportedError{Dialect: p.dialect.Name, Feature: feature})
}

// ident writes a possibly quoted identifier.
func (p *printer) ident(name string) {
	p.write(p.dialect.QuoteIdentifierIfNeeded(name))
}

// bind appends v to the argument list and writes its placeholder.
func (p *printer) bind(v any) {
	p.args = append(p.args, v)
	p.write(p.dialect.FormatPlaceholder(len(p.args)))
}

// formatList prints count items with sep between them.
func (p *printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		if i > 0 {
			p.write(sep)
		}
		format(i)
	}
}
