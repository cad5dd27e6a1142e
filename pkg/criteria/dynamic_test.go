package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

func TestDynamic_ConditionalWhere(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	b := sess.Select()
	id := b.Field("u", f.users.MustField("id"))
	name := b.Field("u", f.users.MustField("name"))
	keep, skip := core.Gt(id, 0), core.Eq(name, "nobody")

	_, err := b.Select(id).From(f.users, "u").
		IfWhere(false, skip).
		IfWhere(true, keep).
		IfAnd(false, skip).
		IfAnd(true, core.IsNotNull(name)).
		WhereFunc(func() core.Expr { return nil }).
		WhereFunc(nil).
		AsSelect()
	require.NoError(t, err)

	preds, err := b.Predicates()
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Same(t, keep, preds[0])
}

func TestDynamic_AndAfterSkippedWhere(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		skip func(b *SelectBuilder) *SelectBuilder
	}{
		{"if where", func(b *SelectBuilder) *SelectBuilder { return b.IfWhere(false, core.Raw("FALSE")) }},
		{"where func", func(b *SelectBuilder) *SelectBuilder { return b.WhereFunc(func() core.Expr { return nil }) }},
		{"where dynamic", func(b *SelectBuilder) *SelectBuilder { return b.WhereDynamic(func(func(core.Expr)) {}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newTestSession(t)
			b := sess.Select()
			id := b.Field("u", f.users.MustField("id"))
			first, second := core.Gt(id, 1), core.Lt(id, 100)

			b.Select(id).From(f.users, "u")
			_, err := tt.skip(b).And(first).IfAnd(true, second).AsSelect()
			require.NoError(t, err)

			preds, err := b.Predicates()
			require.NoError(t, err)
			require.Len(t, preds, 2)
			assert.Same(t, first, preds[0])
			assert.Same(t, second, preds[1])
		})
	}

	sess := newTestSession(t)
	b := sess.Select(core.Star()).From(f.users, "u").IfWhere(false, core.Raw("FALSE")).Or(core.Raw("TRUE"))
	require.ErrorIs(t, b.Err(), ErrNoWhere, "OR still needs something to combine with")
}

func TestDynamic_WhereFuncRequired(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	b := sess.Select(core.Star()).From(f.users, "u").
		WhereFuncRequired(func() core.Expr { return nil })
	require.ErrorIs(t, b.Err(), ErrNilPredicate)
	assert.Equal(t, KindValidation, KindOf(b.Err()))
}

func TestDynamic_WhereDynamic(t *testing.T) {
	f := newFixture()
	filters := map[string]any{"name": "ann", "email": nil}

	sess := newTestSession(t)
	b := sess.Select(core.Star()).From(f.users, "u")
	b.WhereDynamic(func(add func(core.Expr)) {
		for _, col := range []string{"name", "email"} {
			if v := filters[col]; v != nil {
				add(core.Eq(b.Field("u", f.users.MustField(col)), v))
			}
		}
		add(nil)
		add(core.Gt(b.Field("u", f.users.MustField("id")), 10))
	})
	_, err := b.AsSelect()
	require.NoError(t, err)

	preds, err := b.Predicates()
	require.NoError(t, err)
	require.Len(t, preds, 2)
	eq, ok := preds[0].(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, core.OpEq, eq.Op)

	empty := newTestSession(t).Select(core.Star()).From(f.users, "u").
		WhereDynamic(func(func(core.Expr)) {})
	require.NoError(t, empty.Err())

	required := newTestSession(t).Select(core.Star()).From(f.users, "u").
		WhereDynamicRequired(func(func(core.Expr)) {})
	require.ErrorIs(t, required.Err(), ErrEmptyDynamicClause)
	assert.Equal(t, KindCompleteness, KindOf(required.Err()))
}

func TestDynamic_ConditionalSet(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)
	name, email := f.users.MustField("name"), f.users.MustField("email")

	var missing *string
	present := "ann@example.com"

	b := sess.Update(f.users, "").
		IfSet(name, nil).
		IfSet(email, missing).
		IfSet(email, &present).
		SetFunc(name, func() any { return "ann" }).
		Migration()
	_, err := b.AsUpdate()
	require.NoError(t, err)

	set, err := b.Assignments()
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Same(t, email, set[0].Field)
	assert.Same(t, name, set[1].Field)
}

func TestDynamic_SetFunc(t *testing.T) {
	f := newFixture()

	b := newTestSession(t).Update(f.users, "").
		SetFunc(f.users.MustField("email"), func() any { return nil }).
		Migration()
	_, err := b.AsUpdate()
	require.NoError(t, err, "nil assigns NULL to a nullable column")

	b = newTestSession(t).Update(f.users, "").
		SetFuncRequired(f.users.MustField("email"), func() any { return nil })
	require.ErrorIs(t, b.Err(), ErrNullNotAllowed)

	b = newTestSession(t).Update(f.users, "").
		SetFunc(f.users.MustField("id"), func() any { return "seven" })
	var mismatch *TypeMismatchError
	require.ErrorAs(t, b.Err(), &mismatch)
}
