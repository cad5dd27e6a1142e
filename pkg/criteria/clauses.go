package criteria

import (
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// Query is a builder or value that finalizes into a SELECT statement.
type Query interface {
	AsSelect() (*core.SelectStmt, error)
}

// Derived is a builder or value that finalizes into an aliased sub-query.
type Derived interface {
	AsSubQuery(alias string) (*core.SubQuery, error)
}

type preparedSub struct{ sq *core.SubQuery }

func (p preparedSub) AsSubQuery(alias string) (*core.SubQuery, error) {
	if alias == "" || alias == p.sq.Alias {
		return p.sq, nil
	}
	return &core.SubQuery{Alias: alias, Stmt: p.sq.Stmt}, nil
}

// Prepared adapts an already finalized sub-query so it can be used where a
// nested builder is expected. Under its own alias it keeps its identity.
func Prepared(sq *core.SubQuery) Derived { return preparedSub{sq: sq} }

type preparedSelect struct{ stmt *core.SelectStmt }

func (p preparedSelect) AsSelect() (*core.SelectStmt, error) { return p.stmt, nil }

// Stmt adapts an already finalized SELECT so it can be used where a nested
// builder is expected.
func Stmt(s *core.SelectStmt) Query { return preparedSelect{stmt: s} }

// clauseHost is the builder a shared clause reports to.
type clauseHost interface {
	enter(op string, c clause) bool
	fail(op string, err error)
	mutable(op string) bool
}

// consume finalizes a nested query for use inside the enclosing builder.
func consume(h clauseHost, op string, q Query) *core.SelectStmt {
	if !h.mutable(op) {
		return nil
	}
	if core.IsNil(q) {
		h.fail(op, ErrNilExpr)
		return nil
	}
	stmt, err := q.AsSelect()
	if err != nil {
		h.fail(op, err)
		return nil
	}
	return stmt
}

// ---------- WHERE ----------

// whereClause accumulates the predicate list shared by SELECT, UPDATE and
// DELETE. Predicates are joined with AND in call order.
type whereClause[B any] struct {
	host  clauseHost
	self  B
	preds []core.Expr
}

func (w *whereClause[B]) add(op string, preds []core.Expr) B {
	if !w.host.enter(op, clauseWhere) {
		return w.self
	}
	for _, p := range preds {
		if core.IsNil(p) {
			w.host.fail(op, ErrNilPredicate)
			return w.self
		}
	}
	w.preds = append(w.preds, preds...)
	return w.self
}

// Where appends predicates.
func (w *whereClause[B]) Where(preds ...core.Expr) B {
	return w.add("where", preds)
}

// And appends one predicate. On an empty WHERE it starts the clause, so it
// may follow a conditional Where that added nothing.
func (w *whereClause[B]) And(pred core.Expr) B {
	return w.add("and", []core.Expr{pred})
}

// Or combines the predicates so far with pred: (p1 AND ... pn) OR pred.
// It needs at least one predicate to combine with.
func (w *whereClause[B]) Or(pred core.Expr) B {
	const op = "or"
	if !w.host.enter(op, clauseWhere) {
		return w.self
	}
	switch {
	case len(w.preds) == 0:
		w.host.fail(op, ErrNoWhere)
	case core.IsNil(pred):
		w.host.fail(op, ErrNilPredicate)
	default:
		w.preds = []core.Expr{core.Or(core.And(w.preds...), pred)}
	}
	return w.self
}

// WhereExists appends EXISTS (q).
func (w *whereClause[B]) WhereExists(q Query) B {
	if stmt := consume(w.host, "where exists", q); stmt != nil {
		return w.add("where exists", []core.Expr{core.Exists(stmt)})
	}
	return w.self
}

// WhereNotExists appends NOT EXISTS (q).
func (w *whereClause[B]) WhereNotExists(q Query) B {
	if stmt := consume(w.host, "where not exists", q); stmt != nil {
		return w.add("where not exists", []core.Expr{core.NotExists(stmt)})
	}
	return w.self
}

// WhereIn appends e IN (q).
func (w *whereClause[B]) WhereIn(e core.Expr, q Query) B {
	if stmt := consume(w.host, "where in", q); stmt != nil {
		return w.add("where in", []core.Expr{core.InSub(e, stmt)})
	}
	return w.self
}

// ---------- ORDER BY / LIMIT ----------

// orderClause accumulates sort keys and limit bounds.
type orderClause[B any] struct {
	host  clauseHost
	self  B
	order []core.SortItem
	limit *core.Limit
}

// OrderBy appends sort keys.
func (o *orderClause[B]) OrderBy(items ...core.SortItem) B {
	const op = "order by"
	if !o.host.enter(op, clauseOrderBy) {
		return o.self
	}
	for _, it := range items {
		if core.IsNil(it.Expr) {
			o.host.fail(op, ErrNilExpr)
			return o.self
		}
	}
	o.order = append(o.order, items...)
	return o.self
}

func (o *orderClause[B]) bounds() *core.Limit {
	if o.limit == nil {
		o.limit = &core.Limit{}
	}
	return o.limit
}

// Limit sets the maximum row count.
func (o *orderClause[B]) Limit(n int64) B {
	const op = "limit"
	if !o.host.enter(op, clauseLimit) {
		return o.self
	}
	if n < 0 {
		o.host.fail(op, ErrNegativeBound)
		return o.self
	}
	l := o.bounds()
	l.RowCount = n
	l.HasRowCount = true
	return o.self
}

// Offset sets the number of rows to skip.
func (o *orderClause[B]) Offset(n int64) B {
	const op = "offset"
	if !o.host.enter(op, clauseLimit) {
		return o.self
	}
	if n < 0 {
		o.host.fail(op, ErrNegativeBound)
		return o.self
	}
	o.bounds().Offset = n
	return o.self
}

// ---------- RETURNING ----------

// returningClause accumulates RETURNING fields of the target table.
type returningClause[B any] struct {
	host   clauseHost
	self   B
	target *core.Table
	fields []*core.Field
}

// Returning appends fields of the target table to the RETURNING list.
func (r *returningClause[B]) Returning(fields ...*core.Field) B {
	const op = "returning"
	if !r.host.enter(op, clauseReturning) {
		return r.self
	}
	for _, f := range fields {
		if err := belongs(r.target, f); err != nil {
			r.host.fail(op, err)
			return r.self
		}
	}
	r.fields = append(r.fields, fields...)
	return r.self
}
