package criteria

import (
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// DeleteBuilder accumulates a DELETE statement. Unless Migration is set it
// needs at least one WHERE predicate.
type DeleteBuilder struct {
	guard
	whereClause[*DeleteBuilder]
	orderClause[*DeleteBuilder]
	returningClause[*DeleteBuilder]

	table     *core.Table
	alias     string
	migration bool

	stmt *core.DeleteStmt
}

func newDelete(sess *Session, t *core.Table, alias string) *DeleteBuilder {
	b := &DeleteBuilder{table: t, alias: alias}
	b.whereClause = whereClause[*DeleteBuilder]{host: b, self: b}
	b.orderClause = orderClause[*DeleteBuilder]{host: b, self: b}
	b.returningClause = returningClause[*DeleteBuilder]{host: b, self: b, target: t}
	b.open(sess, core.StmtDelete, false, b)
	if t != nil && b.err == nil {
		b.adopt("delete", b.ctx.RegisterTable(visibleName(t, alias), t))
	}
	return b
}

// Field qualifies f through alias, returning the context's cached instance.
func (b *DeleteBuilder) Field(alias string, f *core.Field) *core.QualifiedField {
	return b.field(alias, f)
}

// Col qualifies f through the target table's alias or name.
func (b *DeleteBuilder) Col(f *core.Field) *core.QualifiedField {
	if b.table == nil {
		return b.field("", f)
	}
	return b.field(visibleName(b.table, b.alias), f)
}

// Migration marks the statement as an intentional full-table delete.
func (b *DeleteBuilder) Migration() *DeleteBuilder {
	if b.mutable("migration") {
		b.migration = true
	}
	return b
}

// AsDelete finalizes the builder.
func (b *DeleteBuilder) AsDelete() (*core.DeleteStmt, error) {
	err := b.finalize("as delete", func() error {
		if b.table == nil {
			return ErrMissingTable
		}
		if len(b.preds) == 0 && !b.migration {
			return ErrMissingWhere
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.stmt = core.NewDelete(core.DeleteParts{
		Table:     b.table,
		Alias:     b.alias,
		Where:     b.preds,
		OrderBy:   b.order,
		Limit:     b.limit,
		Returning: b.fields,
		Migration: b.migration,
	})
	b.preds, b.order, b.limit, b.fields = nil, nil, nil, nil
	return b.stmt, nil
}

// Statement returns the finalized statement.
func (b *DeleteBuilder) Statement() (*core.DeleteStmt, error) {
	if err := b.readable("statement"); err != nil {
		return nil, err
	}
	return b.stmt, nil
}

// Predicates returns the finalized WHERE predicates.
func (b *DeleteBuilder) Predicates() ([]core.Expr, error) {
	if err := b.readable("predicates"); err != nil {
		return nil, err
	}
	return b.stmt.Where(), nil
}

// Clear releases the finalized statement.
func (b *DeleteBuilder) Clear() error {
	if err := b.release("clear"); err != nil {
		return err
	}
	b.stmt = nil
	return nil
}
