package criteria

import (
	"fmt"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// ValuesBuilder accumulates a VALUES list. Every row must have the width of
// the first one.
type ValuesBuilder struct {
	guard

	names []string
	rows  [][]core.Expr

	stmt *core.ValuesStmt
}

func newValues(sess *Session, nested bool) *ValuesBuilder {
	b := &ValuesBuilder{}
	b.open(sess, core.StmtValues, nested, b)
	return b
}

// ColumnNames names the columns the list exposes as a derived table.
func (b *ValuesBuilder) ColumnNames(names ...string) *ValuesBuilder {
	const op = "column names"
	if !b.enter(op, clauseColumns) {
		return b
	}
	if len(names) == 0 {
		b.fail(op, ErrEmptyColumnList)
		return b
	}
	b.names = append(b.names, names...)
	return b
}

// Row appends one row. Go values become parameters and nil becomes NULL.
func (b *ValuesBuilder) Row(vals ...any) *ValuesBuilder {
	const op = "row"
	if !b.enter(op, clauseValues) {
		return b
	}
	want := len(b.names)
	if len(b.rows) > 0 {
		want = len(b.rows[0])
	}
	if len(vals) == 0 {
		b.fail(op, ErrEmptyRow)
		return b
	}
	if want > 0 && len(vals) != want {
		b.fail(op, &ValueCountError{Want: want, Got: len(vals)})
		return b
	}
	row := make([]core.Expr, len(vals))
	for i, v := range vals {
		row[i] = valueExpr(v)
	}
	b.rows = append(b.rows, row)
	return b
}

// AsValues finalizes the builder. Unnamed columns are called column1, column2, ...
func (b *ValuesBuilder) AsValues() (*core.ValuesStmt, error) {
	err := b.finalize("as values", func() error {
		if len(b.rows) == 0 {
			return ErrMissingValues
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	names := b.names
	for i := len(names); i < len(b.rows[0]); i++ {
		names = append(names, fmt.Sprintf("column%d", i+1))
	}
	b.stmt = core.NewValues(names, b.rows)
	b.names, b.rows = nil, nil
	return b.stmt, nil
}

// AsSubQuery finalizes the builder and binds the result to alias.
func (b *ValuesBuilder) AsSubQuery(alias string) (*core.SubQuery, error) {
	stmt, err := b.AsValues()
	if err != nil {
		return nil, err
	}
	return &core.SubQuery{Alias: alias, Stmt: stmt}, nil
}

// Statement returns the finalized statement.
func (b *ValuesBuilder) Statement() (*core.ValuesStmt, error) {
	if err := b.readable("statement"); err != nil {
		return nil, err
	}
	return b.stmt, nil
}

// Clear releases the finalized statement.
func (b *ValuesBuilder) Clear() error {
	if err := b.release("clear"); err != nil {
		return err
	}
	b.stmt = nil
	return nil
}
