package criteria

import (
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// InsertBuilder accumulates an INSERT statement. Rows come either from
// Values calls or from a single FromSelect, never both.
type InsertBuilder struct {
	guard
	returningClause[*InsertBuilder]

	table    *core.Table
	columns  []*core.Field
	explicit bool
	rows     [][]core.Expr
	query    *core.SelectStmt
	conflict *core.OnConflict

	stmt *core.InsertStmt
}

func newInsert(sess *Session, t *core.Table) *InsertBuilder {
	b := &InsertBuilder{table: t}
	b.returningClause = returningClause[*InsertBuilder]{host: b, self: b, target: t}
	b.open(sess, core.StmtInsert, false, b)
	if t != nil && b.err == nil {
		b.adopt("insert", b.ctx.RegisterTable(t.Name, t))
	}
	return b
}

// Columns sets the explicit column list. Without it every column of the
// table is written, in declaration order.
func (b *InsertBuilder) Columns(fields ...*core.Field) *InsertBuilder {
	const op = "columns"
	if !b.enter(op, clauseColumns) {
		return b
	}
	if len(fields) == 0 {
		b.fail(op, ErrEmptyColumnList)
		return b
	}
	for _, f := range fields {
		if err := belongs(b.table, f); err != nil {
			b.fail(op, err)
			return b
		}
	}
	b.columns = append(b.columns, fields...)
	b.explicit = true
	return b
}

func (b *InsertBuilder) targets() []*core.Field {
	if b.explicit {
		return b.columns
	}
	return b.table.Fields
}

// Values appends one row. Go values become parameters, nil becomes NULL
// and core expressions are used as-is.
func (b *InsertBuilder) Values(vals ...any) *InsertBuilder {
	const op = "values"
	if !b.enter(op, clauseValues) {
		return b
	}
	if b.table == nil {
		b.fail(op, ErrMissingTable)
		return b
	}
	if b.query != nil {
		b.fail(op, ErrConflictingSource)
		return b
	}
	if len(vals) == 0 {
		b.fail(op, ErrEmptyRow)
		return b
	}
	cols := b.targets()
	if len(vals) != len(cols) {
		b.fail(op, &ValueCountError{Want: len(cols), Got: len(vals)})
		return b
	}
	row := make([]core.Expr, len(vals))
	for i, v := range vals {
		e, err := checkValue(cols[i], v)
		if err != nil {
			b.fail(op, err)
			return b
		}
		row[i] = e
	}
	b.rows = append(b.rows, row)
	return b
}

// FromSelect uses the rows of q. Its output width must match the column list.
func (b *InsertBuilder) FromSelect(q Query) *InsertBuilder {
	const op = "from select"
	if !b.enter(op, clauseValues) {
		return b
	}
	if b.table == nil {
		b.fail(op, ErrMissingTable)
		return b
	}
	if len(b.rows) > 0 || b.query != nil {
		b.fail(op, ErrConflictingSource)
		return b
	}
	stmt := consume(b, op, q)
	if stmt == nil {
		return b
	}
	if want, got := len(b.targets()), len(stmt.OutputColumns()); want != got {
		b.fail(op, &ValueCountError{Want: want, Got: got})
		return b
	}
	b.query = stmt
	return b
}

// OnConflictDoNothing adds ON CONFLICT (keys) DO NOTHING. With no keys the
// conflict target is omitted.
func (b *InsertBuilder) OnConflictDoNothing(keys ...*core.Field) *InsertBuilder {
	const op = "on conflict"
	if !b.enter(op, clauseConflict) {
		return b
	}
	for _, k := range keys {
		if err := belongs(b.table, k); err != nil {
			b.fail(op, err)
			return b
		}
	}
	b.conflict = &core.OnConflict{Keys: keys}
	return b
}

// AsInsert finalizes the builder.
func (b *InsertBuilder) AsInsert() (*core.InsertStmt, error) {
	err := b.finalize("as insert", func() error {
		if b.table == nil {
			return ErrMissingTable
		}
		if len(b.rows) == 0 && b.query == nil {
			return ErrMissingValues
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.stmt = core.NewInsert(core.InsertParts{
		Table:      b.table,
		Columns:    b.targets(),
		Rows:       b.rows,
		Query:      b.query,
		OnConflict: b.conflict,
		Returning:  b.fields,
	})
	b.columns, b.rows, b.query, b.conflict, b.fields = nil, nil, nil, nil, nil
	return b.stmt, nil
}

// Statement returns the finalized statement.
func (b *InsertBuilder) Statement() (*core.InsertStmt, error) {
	if err := b.readable("statement"); err != nil {
		return nil, err
	}
	return b.stmt, nil
}

// TargetFields returns the finalized column list.
func (b *InsertBuilder) TargetFields() ([]*core.Field, error) {
	if err := b.readable("target fields"); err != nil {
		return nil, err
	}
	return b.stmt.Columns(), nil
}

// Rows returns the finalized VALUES rows.
func (b *InsertBuilder) Rows() ([][]core.Expr, error) {
	if err := b.readable("rows"); err != nil {
		return nil, err
	}
	return b.stmt.Rows(), nil
}

// Clear releases the finalized statement.
func (b *InsertBuilder) Clear() error {
	if err := b.release("clear"); err != nil {
		return err
	}
	b.stmt = nil
	return nil
}
