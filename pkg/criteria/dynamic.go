package criteria

import (
	"fmt"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// IfWhere appends pred only when ok is true.
func (w *whereClause[B]) IfWhere(ok bool, pred core.Expr) B {
	if !ok {
		return w.self
	}
	return w.Where(pred)
}

// IfAnd is And applied only when ok is true.
func (w *whereClause[B]) IfAnd(ok bool, pred core.Expr) B {
	if !ok {
		return w.self
	}
	return w.And(pred)
}

// WhereFunc appends the predicate fn returns. A nil result is skipped.
func (w *whereClause[B]) WhereFunc(fn func() core.Expr) B {
	if fn == nil {
		return w.self
	}
	pred := fn()
	if core.IsNil(pred) {
		return w.self
	}
	return w.add("where func", []core.Expr{pred})
}

// WhereFuncRequired appends the predicate fn returns. A nil result is an error.
func (w *whereClause[B]) WhereFuncRequired(fn func() core.Expr) B {
	const op = "where func required"
	var pred core.Expr
	if fn != nil {
		pred = fn()
	}
	return w.add(op, []core.Expr{pred})
}

// WhereDynamic lets fn add any number of predicates through add. Nil
// predicates are skipped.
func (w *whereClause[B]) WhereDynamic(fn func(add func(core.Expr))) B {
	return w.dynamic("where dynamic", fn, false)
}

// WhereDynamicRequired is WhereDynamic where fn must add at least one predicate.
func (w *whereClause[B]) WhereDynamicRequired(fn func(add func(core.Expr))) B {
	return w.dynamic("where dynamic required", fn, true)
}

func (w *whereClause[B]) dynamic(op string, fn func(add func(core.Expr)), required bool) B {
	var preds []core.Expr
	if fn != nil {
		fn(func(p core.Expr) {
			if !core.IsNil(p) {
				preds = append(preds, p)
			}
		})
	}
	if len(preds) == 0 {
		if required && w.host.enter(op, clauseWhere) {
			w.host.fail(op, ErrEmptyDynamicClause)
		}
		return w.self
	}
	return w.add(op, preds)
}

// IfSet assigns value to field unless value is nil, including a typed nil
// pointer.
func (b *UpdateBuilder) IfSet(field *core.Field, value any) *UpdateBuilder {
	if core.IsNil(value) {
		return b
	}
	return b.assign("if set", field, value)
}

// SetFunc assigns the value fn returns. A nil result assigns NULL.
func (b *UpdateBuilder) SetFunc(field *core.Field, fn func() any) *UpdateBuilder {
	var v any
	if fn != nil {
		v = fn()
	}
	return b.assign("set func", field, v)
}

// SetFuncRequired assigns the value fn returns. A nil result is an error
// even for a nullable column.
func (b *UpdateBuilder) SetFuncRequired(field *core.Field, fn func() any) *UpdateBuilder {
	const op = "set func required"
	var v any
	if fn != nil {
		v = fn()
	}
	if core.IsNil(v) {
		if b.enter(op, clauseSet) {
			b.fail(op, fmt.Errorf("%w: %s returned no value", ErrNullNotAllowed, fieldLabel(field)))
		}
		return b
	}
	return b.assign(op, field, v)
}

func fieldLabel(f *core.Field) string {
	if f == nil {
		return "value function"
	}
	return columnName(f)
}
