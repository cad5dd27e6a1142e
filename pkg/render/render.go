// Package render turns finalized statements into dialect-specific SQL.
//
// Output is a single line of SQL plus the ordered argument list. Values are
// always bound through placeholders; only NULL, TRUE and FALSE keywords built
// with core.Raw appear verbatim.
package render

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapcrit/pkg/core"
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

// ErrUnresolved is returned when a statement still holds a derived field
// reference that was never bound to a sub-query column.
var ErrUnresolved = errors.New("unresolved derived field")

// ErrNoDialect is returned when Render is called without a dialect.
var ErrNoDialect = errors.New("render: dialect is required")

// UnsupportedError is returned when a statement uses a construct the dialect
// cannot express.
type UnsupportedError struct {
	Dialect string
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("render: %s is not supported by dialect %s", e.Feature, e.Dialect)
}

// Result is rendered SQL with its bound arguments in placeholder order.
type Result struct {
	SQL  string
	Args []any
}

// Render renders stmt for dialect d.
func Render(stmt core.Stmt, d *dialect.Dialect) (*Result, error) {
	if d == nil {
		return nil, ErrNoDialect
	}
	if core.IsNil(stmt) {
		return nil, errors.New("render: statement is nil")
	}
	p := newPrinter(d)
	p.stmt(stmt)
	if p.err != nil {
		return nil, p.err
	}
	return &Result{SQL: p.String(), Args: p.args}, nil
}

// SQL renders stmt and returns only the SQL text.
func SQL(stmt core.Stmt, d *dialect.Dialect) (string, error) {
	res, err := Render(stmt, d)
	if err != nil {
		return "", err
	}
	return res.SQL, nil
}
