package criteria

import (
	"fmt"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// UpdateBuilder accumulates an UPDATE statement.
//
// An UPDATE needs at least one assignment and, unless Migration is set, at
// least one WHERE predicate.
type UpdateBuilder struct {
	guard
	whereClause[*UpdateBuilder]
	orderClause[*UpdateBuilder]
	returningClause[*UpdateBuilder]

	table     *core.Table
	alias     string
	set       []core.Assignment
	migration bool

	stmt *core.UpdateStmt
}

func newUpdate(sess *Session, t *core.Table, alias string) *UpdateBuilder {
	b := &UpdateBuilder{table: t, alias: alias}
	b.whereClause = whereClause[*UpdateBuilder]{host: b, self: b}
	b.orderClause = orderClause[*UpdateBuilder]{host: b, self: b}
	b.returningClause = returningClause[*UpdateBuilder]{host: b, self: b, target: t}
	b.open(sess, core.StmtUpdate, false, b)
	if t != nil && b.err == nil {
		b.adopt("update", b.ctx.RegisterTable(visibleName(t, alias), t))
	}
	return b
}

func visibleName(t *core.Table, alias string) string {
	if alias != "" {
		return alias
	}
	return t.Name
}

// Field qualifies f through alias, returning the context's cached instance.
func (b *UpdateBuilder) Field(alias string, f *core.Field) *core.QualifiedField {
	return b.field(alias, f)
}

// Col qualifies f through the target table's alias or name.
func (b *UpdateBuilder) Col(f *core.Field) *core.QualifiedField {
	if b.table == nil {
		return b.field("", f)
	}
	return b.field(visibleName(b.table, b.alias), f)
}

// Set assigns value to field. Go values become parameters, nil becomes NULL
// and core expressions are used as-is.
func (b *UpdateBuilder) Set(field *core.Field, value any) *UpdateBuilder {
	return b.assign("set", field, value)
}

// SetExpr assigns an expression to field.
func (b *UpdateBuilder) SetExpr(field *core.Field, e core.Expr) *UpdateBuilder {
	const op = "set expr"
	if core.IsNil(e) {
		if b.enter(op, clauseSet) {
			b.fail(op, ErrNilExpr)
		}
		return b
	}
	return b.assign(op, field, e)
}

// SetNull assigns NULL to field.
func (b *UpdateBuilder) SetNull(field *core.Field) *UpdateBuilder {
	return b.assign("set null", field, nil)
}

func (b *UpdateBuilder) assign(op string, field *core.Field, value any) *UpdateBuilder {
	if !b.enter(op, clauseSet) {
		return b
	}
	if b.table == nil {
		b.fail(op, ErrMissingTable)
		return b
	}
	if err := belongs(b.table, field); err != nil {
		b.fail(op, err)
		return b
	}
	if !field.Updatable {
		b.fail(op, fmt.Errorf("%w: column %s", ErrFieldNotUpdatable, columnName(field)))
		return b
	}
	e, err := checkValue(field, value)
	if err != nil {
		b.fail(op, err)
		return b
	}
	b.set = append(b.set, core.Assignment{Field: field, Value: e})
	return b
}

// Migration marks the statement as an intentional full-table update, so it
// may finalize without a WHERE clause.
func (b *UpdateBuilder) Migration() *UpdateBuilder {
	if b.mutable("migration") {
		b.migration = true
	}
	return b
}

// AsUpdate finalizes the builder.
func (b *UpdateBuilder) AsUpdate() (*core.UpdateStmt, error) {
	err := b.finalize("as update", func() error {
		switch {
		case b.table == nil:
			return ErrMissingTable
		case len(b.set) == 0:
			return ErrMissingSet
		case len(b.preds) == 0 && !b.migration:
			return ErrMissingWhere
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.stmt = core.NewUpdate(core.UpdateParts{
		Table:     b.table,
		Alias:     b.alias,
		Set:       b.set,
		Where:     b.preds,
		OrderBy:   b.order,
		Limit:     b.limit,
		Returning: b.fields,
		Migration: b.migration,
	})
	b.set, b.preds, b.order, b.limit, b.fields = nil, nil, nil, nil, nil
	return b.stmt, nil
}

// Statement returns the finalized statement.
func (b *UpdateBuilder) Statement() (*core.UpdateStmt, error) {
	if err := b.readable("statement"); err != nil {
		return nil, err
	}
	return b.stmt, nil
}

// Assignments returns the finalized SET list.
func (b *UpdateBuilder) Assignments() ([]core.Assignment, error) {
	if err := b.readable("assignments"); err != nil {
		return nil, err
	}
	return b.stmt.Set(), nil
}

// Predicates returns the finalized WHERE predicates.
func (b *UpdateBuilder) Predicates() ([]core.Expr, error) {
	if err := b.readable("predicates"); err != nil {
		return nil, err
	}
	return b.stmt.Where(), nil
}

// Clear releases the finalized statement.
func (b *UpdateBuilder) Clear() error {
	if err := b.release("clear"); err != nil {
		return err
	}
	b.stmt = nil
	return nil
}
