package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// spending starts a nested SELECT of per-user order totals.
func spending(sess *Session, f fixture) *SelectBuilder {
	sub := sess.SubSelect()
	uid := sub.Field("o", f.orders.MustField("user_id"))
	total := sub.Field("o", f.orders.MustField("total"))
	return sub.Select(uid, core.As(core.Sum(total), "spent")).
		From(f.orders, "o").
		GroupBy(uid)
}

func TestNested_ForwardReferenceThroughBuilders(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	outer := sess.Select()
	spent := outer.Ref("s", "spent", core.KindDecimal)
	uid := outer.Field("u", f.users.MustField("id"))
	outer.Select(uid, spent).From(f.users, "u")
	assert.False(t, spent.Resolved())

	sub := spending(sess, f)
	assert.Equal(t, 2, sess.Depth())

	outer.JoinSub(core.JoinLeft, sub, "s")
	require.NoError(t, outer.Err())
	outer.On(core.Eq(outer.Ref("s", "user_id"), uid))
	require.NoError(t, outer.Err())
	assert.Equal(t, 1, sess.Depth(), "the sub-select popped its context")
	assert.True(t, sub.Prepared())
	assert.True(t, spent.Resolved())

	stmt, err := outer.AsSelect()
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Depth())

	cols := stmt.OutputColumns()
	require.Len(t, cols, 2)
	assert.Equal(t, "spent", cols[1].Name)
	assert.Equal(t, core.KindDecimal, cols[1].Type.Kind)
}

func TestNested_UnresolvedReferenceAtFinalize(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	outer := sess.Select()
	ghost := outer.Ref("g", "value")
	_, err := outer.Select(ghost).From(f.users, "u").AsSelect()

	var unresolved *UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, []string{"g.value"}, unresolved.Refs)
	assert.Equal(t, KindReferential, KindOf(err))
	assert.Equal(t, 0, sess.Depth())
}

func TestNested_RootWithOpenChild(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	outer := sess.Select(core.Star()).From(f.users, "u")
	child := sess.SubSelect(core.Star()).From(f.orders, "o")

	_, err := outer.AsSelect()
	var pending *PendingSubContextError
	require.ErrorAs(t, err, &pending)
	assert.Equal(t, 0, sess.Depth())

	_, err = child.AsSelect()
	require.Error(t, err, "the child's tree is gone")
}

func TestNested_OutOfOrderFinalize(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	sess.Select(core.Star()).From(f.users, "u")
	first := sess.SubSelect(core.Star()).From(f.orders, "o1")
	sess.SubSelect(core.Star()).From(f.orders, "o2")
	require.Equal(t, 3, sess.Depth())

	_, err := first.AsSelect()
	var mismatch *StackMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 0, sess.Depth())
}

func TestNested_SubSelectNeedsRoot(t *testing.T) {
	sess := newTestSession(t)
	sub := sess.SubSelect(core.Raw("1"))
	require.ErrorIs(t, sub.Err(), ErrNoRootContext)
}

func TestNested_FailedChildFailsParent(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	outer := sess.Select(core.Star()).From(f.users, "u")
	sub := sess.SubSelect().From(f.orders, "o").Limit(-1)
	outer.FromSub(sub, "s")

	require.ErrorIs(t, outer.Err(), ErrNegativeBound)
	_, err := outer.AsSelect()
	require.ErrorIs(t, err, ErrNegativeBound)
	assert.Equal(t, 0, sess.Depth())
}

func TestNested_ExistsAndIn(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	outer := sess.Select()
	uid := outer.Field("u", f.users.MustField("id"))
	outer.Select(uid).From(f.users, "u")

	exists := sess.SubSelect(core.Raw("1")).From(f.orders, "o")
	exists.Where(core.Eq(exists.Field("o", f.orders.MustField("user_id")), uid))
	outer.WhereExists(exists)

	paid := sess.SubSelect()
	paid.Select(paid.Field("o", f.orders.MustField("user_id"))).
		From(f.orders, "o").
		Where(core.Eq(paid.Field("o", f.orders.MustField("status")), "paid"))
	outer.WhereIn(uid, paid)

	_, err := outer.AsSelect()
	require.NoError(t, err)

	preds, err := outer.Predicates()
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.IsType(t, &core.ExistsExpr{}, preds[0])
	in, ok := preds[1].(*core.InSubExpr)
	require.True(t, ok)
	assert.Same(t, uid, in.Expr)
	assert.Len(t, in.Query.Where(), 1)
}

func TestNested_CorrelatedRefToParentDerivedTable(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	outer := sess.Select()
	uid := outer.Ref("d", "user_id")
	outer.Select(uid).FromSub(Prepared(spendSub(f, "d")), "d")
	require.NoError(t, outer.Err())

	sub := sess.SubSelect(core.Raw("1")).From(f.orders, "o")
	spent := sub.Ref("d", "spent")
	require.True(t, spent.Resolved(), "the parent's derived table answers the reference")
	sub.Where(core.Gt(spent, 0)).
		And(core.Eq(sub.Field("o", f.orders.MustField("user_id")), sub.Ref("d", "user_id")))
	require.NoError(t, sub.Err())

	outer.WhereExists(sub)
	require.NoError(t, outer.Err())
	stmt, err := outer.AsSelect()
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Depth())

	require.Len(t, stmt.Where(), 1)
	exists, ok := stmt.Where()[0].(*core.ExistsExpr)
	require.True(t, ok)
	assert.Len(t, exists.Query.Where(), 2)
	assert.Equal(t, core.KindDecimal, spent.Type().Kind)
	assert.Same(t, uid, sub.Ref("d", "user_id"), "both scopes share one reference")
}

func TestNested_OwnAliasShadowsParent(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	outer := sess.Select(core.Star()).FromSub(Prepared(spendSub(f, "d")), "d")
	fromParent, err := outer.ctx.Ref("d", "spent")
	require.NoError(t, err)

	sub := sess.SubSelect(core.Raw("1")).FromSub(Prepared(spendSub(f, "d")), "d")
	got := sub.Ref("d", "spent")
	require.NoError(t, sub.Err())
	assert.NotSame(t, fromParent, got)

	own, err := sub.ctx.Ref("d", "spent")
	require.NoError(t, err)
	assert.Same(t, own, got)
}

func TestNested_CommonTableExpression(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	outer := sess.Select()
	big := outer.Ref("big", "spent")
	outer.With("big", spending(sess, f)).
		Select(big).
		FromCTE("big", "")
	require.NoError(t, outer.Err())

	stmt, err := outer.AsSelect()
	require.NoError(t, err)
	require.Len(t, stmt.With(), 1)
	assert.Equal(t, "big", stmt.With()[0].Name)

	src := stmt.From()
	require.Len(t, src, 1)
	assert.Equal(t, "big", src[0].CTE)
	assert.Same(t, stmt.With()[0].Query, src[0].Sub)
	assert.True(t, big.Resolved())
}

func TestNested_UnknownCTE(t *testing.T) {
	sess := newTestSession(t)
	b := sess.Select(core.Star()).FromCTE("missing", "m")

	var unresolved *UnresolvedReferenceError
	require.ErrorAs(t, b.Err(), &unresolved)
	assert.Equal(t, []string{"missing"}, unresolved.Refs)
}

func TestNested_PreparedSubQueryKeepsIdentity(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)
	sq := spendSub(f, "s")

	b := sess.Select(core.Star()).FromSub(Prepared(sq), "s")
	require.NoError(t, b.Err())
	got, ok := b.ctx.SubQuery("s")
	require.True(t, ok)
	assert.Same(t, sq, got)

	b.CrossJoin(f.users, "u")
	_, err := b.AsSelect()
	require.NoError(t, err)
}
