package render

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/pkg/core"
	"github.com/leapstack-labs/leapcrit/pkg/criteria"
)

// Golden files live in testdata/golden/{name}.golden. Regenerate with
//
//	go test ./pkg/render -update
func TestGolden(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		build   func(sess *criteria.Session) (core.Stmt, error)
	}{
		{"select_spending_postgres", "postgres", buildSpending},
		{"insert_conflict_postgres", "postgres", buildInsert},
		{"update_limit_mysql", "mysql", buildUpdate},
		{"values_derived_duckdb", "duckdb", buildValues},
		{"exists_fetch_ansi", "ansi", buildExists},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := tt.build(newSession(t))
			require.NoError(t, err)

			res, err := Render(stmt, mustDialect(t, tt.dialect))
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(fmt.Sprintf("%s\n-- args: %v\n", res.SQL, res.Args)))
		})
	}
}

func buildSpending(sess *criteria.Session) (core.Stmt, error) {
	outer := sess.Select()
	name := outer.Field("u", users.MustField("name"))
	spent := outer.Ref("s", "spent", core.KindDecimal)
	outer.Select(name, spent).From(users, "u")

	sub := sess.SubSelect()
	uid := sub.Field("o", orders.MustField("user_id"))
	sub.Select(uid, core.As(core.Sum(sub.Field("o", orders.MustField("total"))), "spent")).
		From(orders, "o").
		GroupBy(uid)

	outer.JoinSub(core.JoinInner, sub, "s")
	outer.On(core.Eq(outer.Ref("s", "user_id"), outer.Field("u", users.MustField("id"))))
	return outer.Where(core.Gt(spent, 100)).
		OrderBy(core.Desc(spent)).
		Limit(5).
		AsSelect()
}

func buildInsert(sess *criteria.Session) (core.Stmt, error) {
	id := users.MustField("id")
	return sess.Insert(users).
		Columns(id, users.MustField("name"), users.MustField("email")).
		Values(1, "ann", nil).
		Values(2, "bob", "bob@example.com").
		OnConflictDoNothing(id).
		Returning(id).
		AsInsert()
}

func buildUpdate(sess *criteria.Session) (core.Stmt, error) {
	b := sess.Update(users, "u")
	return b.Set(users.MustField("name"), "anonymous").
		Where(core.Eq(b.Col(users.MustField("id")), 3)).
		OrderBy(core.Asc(b.Col(users.MustField("id")))).
		Limit(1).
		AsUpdate()
}

func buildValues(sess *criteria.Session) (core.Stmt, error) {
	outer := sess.Select(core.Star())
	codes := sess.SubValues().
		ColumnNames("code", "title").
		Row("a", "Alpha").
		Row("b", "Beta")
	return outer.FromSub(codes, "v").AsSelect()
}

func buildExists(sess *criteria.Session) (core.Stmt, error) {
	outer := sess.Select()
	uid := outer.Field("u", users.MustField("id"))
	outer.Select(uid).From(users, "u")

	orderRows := sess.SubSelect(core.Raw("1")).From(orders, "o")
	orderRows.Where(core.Eq(orderRows.Field("o", orders.MustField("user_id")), uid))

	return outer.WhereExists(orderRows).
		OrderBy(core.Asc(uid)).
		Offset(10).
		Limit(5).
		ForUpdate().
		AsSelect()
}
