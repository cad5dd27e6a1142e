package criteria

import (
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// SelectBuilder accumulates a SELECT statement.
//
// Clauses must be added in SQL order: WITH, SELECT/DISTINCT, FROM/JOIN/ON,
// WHERE, GROUP BY, HAVING, ORDER BY, LIMIT/OFFSET, FOR UPDATE/SHARE.
// Clauses of one stage may repeat and interleave.
type SelectBuilder struct {
	guard
	whereClause[*SelectBuilder]
	orderClause[*SelectBuilder]

	with       []core.CTE
	distinct   bool
	selections []core.Expr
	from       []core.TableBlock
	groupBy    []core.Expr
	having     []core.Expr
	lock       core.LockMode

	stmt *core.SelectStmt
}

func newSelect(sess *Session, nested bool) *SelectBuilder {
	b := &SelectBuilder{}
	b.whereClause = whereClause[*SelectBuilder]{host: b, self: b}
	b.orderClause = orderClause[*SelectBuilder]{host: b, self: b}
	b.open(sess, core.StmtSelect, nested, b)
	return b
}

// enter also closes a pending join: any clause other than ON requires the
// last join to have its ON predicates.
func (b *SelectBuilder) enter(op string, c clause) bool {
	if !b.mutable(op) {
		return false
	}
	if c != clauseOn {
		if err := b.checkJoins(); err != nil {
			b.fail(op, err)
			return false
		}
	}
	if err := b.stages.advance(c); err != nil {
		b.fail(op, err)
		return false
	}
	return true
}

func (b *SelectBuilder) checkJoins() error {
	if len(b.from) == 0 {
		return nil
	}
	last := b.from[len(b.from)-1]
	if last.Kind.RequiresOn() && len(last.On) == 0 {
		return &MissingOnClauseError{Alias: last.Name(), Join: last.Kind}
	}
	return nil
}

// Field qualifies f through alias, returning the context's cached instance.
func (b *SelectBuilder) Field(alias string, f *core.Field) *core.QualifiedField {
	return b.field(alias, f)
}

// Ref references column of the sub-query bound to alias. The sub-query may
// be registered later; the reference is resolved then.
func (b *SelectBuilder) Ref(alias, column string, expect ...core.TypeKind) *core.DerivedField {
	return b.ref(alias, column, expect)
}

// With adds a common table expression. The sub-query is registered under
// name and can be read with FromCTE or JoinCTE.
func (b *SelectBuilder) With(name string, sub Derived) *SelectBuilder {
	const op = "with"
	if !b.enter(op, clauseWith) {
		return b
	}
	sq, err := sub.AsSubQuery(name)
	if !b.adopt(op, err) {
		return b
	}
	if !b.adopt(op, b.ctx.RegisterSubQuery(name, sq)) {
		return b
	}
	b.with = append(b.with, core.CTE{Name: name, Query: sq})
	return b
}

// Select appends items to the select list. Calling it with no items is a no-op.
func (b *SelectBuilder) Select(items ...core.Expr) *SelectBuilder {
	const op = "select"
	if len(items) == 0 {
		return b
	}
	if !b.enter(op, clauseSelect) {
		return b
	}
	for _, it := range items {
		if core.IsNil(it) {
			b.fail(op, ErrNilExpr)
			return b
		}
	}
	b.selections = append(b.selections, items...)
	return b
}

// Distinct makes the statement SELECT DISTINCT.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	if b.enter("distinct", clauseSelect) {
		b.distinct = true
	}
	return b
}

// GroupBy appends grouping keys.
func (b *SelectBuilder) GroupBy(exprs ...core.Expr) *SelectBuilder {
	const op = "group by"
	if !b.enter(op, clauseGroupBy) {
		return b
	}
	for _, e := range exprs {
		if core.IsNil(e) {
			b.fail(op, ErrNilExpr)
			return b
		}
	}
	b.groupBy = append(b.groupBy, exprs...)
	return b
}

// Having appends HAVING predicates; they are joined with AND.
func (b *SelectBuilder) Having(preds ...core.Expr) *SelectBuilder {
	const op = "having"
	if !b.enter(op, clauseHaving) {
		return b
	}
	for _, p := range preds {
		if core.IsNil(p) {
			b.fail(op, ErrNilPredicate)
			return b
		}
	}
	b.having = append(b.having, preds...)
	return b
}

// ForUpdate adds FOR UPDATE.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	if b.enter("for update", clauseLock) {
		b.lock = core.LockForUpdate
	}
	return b
}

// ForShare adds FOR SHARE.
func (b *SelectBuilder) ForShare() *SelectBuilder {
	if b.enter("for share", clauseLock) {
		b.lock = core.LockForShare
	}
	return b
}

// AsSelect finalizes the builder.
func (b *SelectBuilder) AsSelect() (*core.SelectStmt, error) {
	err := b.finalize("as select", func() error {
		if err := b.checkJoins(); err != nil {
			return err
		}
		if len(b.selections) == 0 && len(b.from) == 0 {
			return ErrMissingSelection
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.stmt = core.NewSelect(core.SelectParts{
		With:       b.with,
		Distinct:   b.distinct,
		Selections: b.selections,
		From:       b.from,
		Where:      b.preds,
		GroupBy:    b.groupBy,
		Having:     b.having,
		OrderBy:    b.order,
		Limit:      b.limit,
		Lock:       b.lock,
	})
	b.with, b.selections, b.from, b.preds = nil, nil, nil, nil
	b.groupBy, b.having, b.order, b.limit = nil, nil, nil, nil
	return b.stmt, nil
}

// AsSubQuery finalizes the builder and binds the result to alias.
func (b *SelectBuilder) AsSubQuery(alias string) (*core.SubQuery, error) {
	stmt, err := b.AsSelect()
	if err != nil {
		return nil, err
	}
	return &core.SubQuery{Alias: alias, Stmt: stmt}, nil
}

// Statement returns the finalized statement.
func (b *SelectBuilder) Statement() (*core.SelectStmt, error) {
	if err := b.readable("statement"); err != nil {
		return nil, err
	}
	return b.stmt, nil
}

// Selections returns the finalized select list.
func (b *SelectBuilder) Selections() ([]core.Expr, error) {
	if err := b.readable("selections"); err != nil {
		return nil, err
	}
	return b.stmt.Selections(), nil
}

// Sources returns the finalized table blocks.
func (b *SelectBuilder) Sources() ([]core.TableBlock, error) {
	if err := b.readable("sources"); err != nil {
		return nil, err
	}
	return b.stmt.From(), nil
}

// Predicates returns the finalized WHERE predicates.
func (b *SelectBuilder) Predicates() ([]core.Expr, error) {
	if err := b.readable("predicates"); err != nil {
		return nil, err
	}
	return b.stmt.Where(), nil
}

// GroupKeys returns the finalized GROUP BY keys.
func (b *SelectBuilder) GroupKeys() ([]core.Expr, error) {
	if err := b.readable("group keys"); err != nil {
		return nil, err
	}
	return b.stmt.GroupBy(), nil
}

// HavingList returns the finalized HAVING predicates.
func (b *SelectBuilder) HavingList() ([]core.Expr, error) {
	if err := b.readable("having list"); err != nil {
		return nil, err
	}
	return b.stmt.Having(), nil
}

// SortKeys returns the finalized ORDER BY keys.
func (b *SelectBuilder) SortKeys() ([]core.SortItem, error) {
	if err := b.readable("sort keys"); err != nil {
		return nil, err
	}
	return b.stmt.OrderBy(), nil
}

// LimitClause returns the finalized limit bounds, or nil.
func (b *SelectBuilder) LimitClause() (*core.Limit, error) {
	if err := b.readable("limit clause"); err != nil {
		return nil, err
	}
	return b.stmt.Limit(), nil
}

// Clear releases the finalized statement. The builder is unusable afterwards.
func (b *SelectBuilder) Clear() error {
	if err := b.release("clear"); err != nil {
		return err
	}
	b.stmt = nil
	return nil
}
