package criteria

import (
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// From adds a table source. An empty alias uses the table name.
func (b *SelectBuilder) From(t *core.Table, alias string) *SelectBuilder {
	return b.addTable("from", clauseFrom, core.JoinNone, t, alias)
}

// FromSub adds a derived table.
func (b *SelectBuilder) FromSub(sub Derived, alias string) *SelectBuilder {
	return b.addSub("from", clauseFrom, core.JoinNone, sub, alias)
}

// FromCTE reads a common table expression declared with With. An empty
// alias uses the CTE name.
func (b *SelectBuilder) FromCTE(name, alias string) *SelectBuilder {
	return b.addCTE("from", clauseFrom, core.JoinNone, name, alias)
}

// Join adds an inner join; follow it with On.
func (b *SelectBuilder) Join(t *core.Table, alias string) *SelectBuilder {
	return b.addTable("join", clauseJoin, core.JoinInner, t, alias)
}

// LeftJoin adds a left outer join; follow it with On.
func (b *SelectBuilder) LeftJoin(t *core.Table, alias string) *SelectBuilder {
	return b.addTable("left join", clauseJoin, core.JoinLeft, t, alias)
}

// RightJoin adds a right outer join; follow it with On.
func (b *SelectBuilder) RightJoin(t *core.Table, alias string) *SelectBuilder {
	return b.addTable("right join", clauseJoin, core.JoinRight, t, alias)
}

// FullJoin adds a full outer join; follow it with On.
func (b *SelectBuilder) FullJoin(t *core.Table, alias string) *SelectBuilder {
	return b.addTable("full join", clauseJoin, core.JoinFull, t, alias)
}

// CrossJoin adds a cross join, which takes no ON clause.
func (b *SelectBuilder) CrossJoin(t *core.Table, alias string) *SelectBuilder {
	return b.addTable("cross join", clauseJoin, core.JoinCross, t, alias)
}

// StraightJoin adds a MySQL STRAIGHT_JOIN; follow it with On.
func (b *SelectBuilder) StraightJoin(t *core.Table, alias string) *SelectBuilder {
	return b.addTable("straight join", clauseJoin, core.JoinStraight, t, alias)
}

// JoinSub joins a derived table with the given join kind.
func (b *SelectBuilder) JoinSub(kind core.JoinKind, sub Derived, alias string) *SelectBuilder {
	return b.addSub("join sub", clauseJoin, kind, sub, alias)
}

// JoinCTE joins a common table expression with the given join kind.
func (b *SelectBuilder) JoinCTE(kind core.JoinKind, name, alias string) *SelectBuilder {
	return b.addCTE("join cte", clauseJoin, kind, name, alias)
}

// On appends predicates to the ON list of the last join.
func (b *SelectBuilder) On(preds ...core.Expr) *SelectBuilder {
	const op = "on"
	if !b.enter(op, clauseOn) {
		return b
	}
	if len(b.from) == 0 || !b.from[len(b.from)-1].Kind.RequiresOn() {
		b.fail(op, ErrDanglingOn)
		return b
	}
	for _, p := range preds {
		if core.IsNil(p) {
			b.fail(op, ErrNilPredicate)
			return b
		}
	}
	last := &b.from[len(b.from)-1]
	last.On = append(last.On, preds...)
	return b
}

// OnAnd appends one predicate to the ON list of the last join.
func (b *SelectBuilder) OnAnd(pred core.Expr) *SelectBuilder {
	return b.On(pred)
}

func (b *SelectBuilder) joinable(op string, c clause, kind core.JoinKind) bool {
	if !b.enter(op, c) {
		return false
	}
	if kind != core.JoinNone && len(b.from) == 0 {
		b.fail(op, ErrJoinWithoutFrom)
		return false
	}
	return true
}

func (b *SelectBuilder) addTable(op string, c clause, kind core.JoinKind, t *core.Table, alias string) *SelectBuilder {
	if !b.joinable(op, c, kind) {
		return b
	}
	if t == nil {
		b.fail(op, ErrMissingTable)
		return b
	}
	name := alias
	if name == "" {
		name = t.Name
	}
	if !b.adopt(op, b.ctx.RegisterTable(name, t)) {
		return b
	}
	b.from = append(b.from, core.TableBlock{Kind: kind, Table: t, Alias: alias})
	return b
}

func (b *SelectBuilder) addSub(op string, c clause, kind core.JoinKind, sub Derived, alias string) *SelectBuilder {
	if !b.joinable(op, c, kind) {
		return b
	}
	if core.IsNil(sub) {
		b.fail(op, ErrNilExpr)
		return b
	}
	if alias == "" {
		b.fail(op, ErrMissingAlias)
		return b
	}
	sq, err := sub.AsSubQuery(alias)
	if !b.adopt(op, err) {
		return b
	}
	if !b.adopt(op, b.ctx.RegisterSubQuery(alias, sq)) {
		return b
	}
	b.from = append(b.from, core.TableBlock{Kind: kind, Sub: sq, Alias: alias})
	return b
}

func (b *SelectBuilder) addCTE(op string, c clause, kind core.JoinKind, name, alias string) *SelectBuilder {
	if !b.joinable(op, c, kind) {
		return b
	}
	var def *core.SubQuery
	for _, cte := range b.with {
		if cte.Name == name {
			def = cte.Query
			break
		}
	}
	if def == nil {
		b.fail(op, &UnresolvedReferenceError{Refs: []string{name}})
		return b
	}
	visible := alias
	if visible == "" {
		visible = name
	}
	if !b.adopt(op, b.ctx.RegisterSubQuery(visible, def)) {
		return b
	}
	block := core.TableBlock{Kind: kind, Sub: def, CTE: name}
	if alias != name {
		block.Alias = alias
	}
	b.from = append(b.from, block)
	return b
}
