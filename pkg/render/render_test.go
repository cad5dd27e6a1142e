package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

func TestRender_SelectAcrossDialects(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{"postgres", "SELECT u.id, u.name FROM users AS u WHERE u.id = $1 ORDER BY u.name LIMIT 10 OFFSET 20"},
		{"mysql", "SELECT u.id, u.name FROM users AS u WHERE u.id = ? ORDER BY u.name LIMIT 10 OFFSET 20"},
		{"ansi", "SELECT u.id, u.name FROM users AS u WHERE u.id = ? ORDER BY u.name OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY"},
		{"snowflake", `SELECT "u"."id", "u"."name" FROM "users" AS "u" WHERE "u"."id" = :1 ORDER BY "u"."name" LIMIT 10 OFFSET 20`},
		{"databricks", "SELECT u.id, u.name FROM users AS u WHERE u.id = :p1 ORDER BY u.name LIMIT 10 OFFSET 20"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			res, err := Render(simpleSelect(), mustDialect(t, tt.dialect))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.SQL)
			assert.Equal(t, []any{5}, res.Args)
		})
	}
}

func TestRender_PlaceholdersNumberInOrder(t *testing.T) {
	id := &core.QualifiedField{Alias: "u", Field: users.MustField("id")}
	name := &core.QualifiedField{Alias: "u", Field: users.MustField("name")}
	stmt := core.NewSelect(core.SelectParts{
		Selections: []core.Expr{id},
		From:       []core.TableBlock{{Table: users, Alias: "u"}},
		Where: []core.Expr{
			core.In(id, 1, 2, 3),
			core.Or(core.Like(name, "a%"), core.IsNull(name)),
		},
	})

	res, err := Render(stmt, mustDialect(t, "postgres"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT u.id FROM users AS u WHERE u.id IN ($1, $2, $3) AND (u.name LIKE $4 OR u.name IS NULL)", res.SQL)
	assert.Equal(t, []any{1, 2, 3, "a%"}, res.Args)
}

func TestRender_Expressions(t *testing.T) {
	id := users.MustField("id")
	total := &core.QualifiedField{Alias: "o", Field: orders.MustField("total")}

	tests := []struct {
		name string
		expr core.Expr
		want string
	}{
		{"bare field", id, "id"},
		{"star", core.Star(), "*"},
		{"qualified star", core.StarOf("o"), "o.*"},
		{"label", core.As(core.Sum(total), "spent"), "SUM(o.total) AS spent"},
		{"count star", core.CountStar(), "COUNT(*)"},
		{"count distinct", core.CountDistinct(total), "COUNT(DISTINCT o.total)"},
		{"arithmetic nests", core.Mul(core.Add(total, 1), 2), "(o.total + ?) * ?"},
		{"not", core.Not(core.Eq(total, 0)), "NOT (o.total = ?)"},
		{"between", core.NotBetween(total, 1, 9), "o.total NOT BETWEEN ? AND ?"},
		{"is not null", core.IsNotNull(total), "o.total IS NOT NULL"},
		{"empty in", core.In(total), "1 = 0"},
		{"empty not in", core.NotIn(total), "1 = 1"},
		{"raw", core.Null(), "NULL"},
		{"nested logical", core.And(core.Eq(total, 1), core.Or(core.Eq(total, 2), core.Eq(total, 3))),
			"o.total = ? AND (o.total = ? OR o.total = ?)"},
	}

	d := mustDialect(t, "mysql")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPrinter(d)
			p.formatExpr(tt.expr)
			require.NoError(t, p.err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestRender_QuotesWhenNeeded(t *testing.T) {
	tbl := core.NewTable("sales", "order", []core.Column{
		{Name: "Group", Type: "text"},
		{Name: "select", Type: "text"},
		{Name: "plain", Type: "text"},
	})
	stmt := core.NewSelect(core.SelectParts{
		Selections: []core.Expr{tbl.MustField("Group"), tbl.MustField("select"), tbl.MustField("plain")},
		From:       []core.TableBlock{{Table: tbl}},
	})

	pg, err := SQL(stmt, mustDialect(t, "postgres"))
	require.NoError(t, err)
	assert.Equal(t, `SELECT "Group", "select", plain FROM sales."order"`, pg)

	my, err := SQL(stmt, mustDialect(t, "mysql"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT `Group`, `select`, plain FROM sales.`order`", my)
}

func TestRender_UnresolvedDerivedField(t *testing.T) {
	ref := core.NewDerivedField("s", "spent", core.KindUnknown)
	stmt := core.NewSelect(core.SelectParts{
		Selections: []core.Expr{ref},
		From:       []core.TableBlock{{Table: users, Alias: "u"}},
	})

	_, err := Render(stmt, mustDialect(t, "postgres"))
	require.ErrorIs(t, err, ErrUnresolved)
	assert.Contains(t, err.Error(), "s.spent")
}

func TestRender_Unsupported(t *testing.T) {
	id := users.MustField("id")
	uid := &core.QualifiedField{Alias: "u", Field: id}

	tests := []struct {
		name    string
		dialect string
		stmt    core.Stmt
		feature string
	}{
		{
			name:    "full join on mysql",
			dialect: "mysql",
			stmt: core.NewSelect(core.SelectParts{
				From: []core.TableBlock{
					{Table: users, Alias: "u"},
					{Kind: core.JoinFull, Table: orders, Alias: "o", On: []core.Expr{core.Eq(uid, 1)}},
				},
			}),
			feature: "FULL JOIN",
		},
		{
			name:    "returning on mysql",
			dialect: "mysql",
			stmt: core.NewInsert(core.InsertParts{
				Table: users, Columns: []*core.Field{id}, Rows: [][]core.Expr{{core.P(1)}},
				Returning: []*core.Field{id},
			}),
			feature: "RETURNING",
		},
		{
			name:    "row locking on sqlite",
			dialect: "sqlite",
			stmt: core.NewSelect(core.SelectParts{
				From: []core.TableBlock{{Table: users}},
				Lock: core.LockForUpdate,
			}),
			feature: "FOR UPDATE",
		},
		{
			name:    "delete limit on postgres",
			dialect: "postgres",
			stmt: core.NewDelete(core.DeleteParts{
				Table: users, Where: []core.Expr{core.Eq(id, 1)},
				Limit: &core.Limit{RowCount: 1, HasRowCount: true},
			}),
			feature: "DELETE with ORDER BY/LIMIT",
		},
		{
			name:    "on conflict on snowflake",
			dialect: "snowflake",
			stmt: core.NewInsert(core.InsertParts{
				Table: users, Columns: []*core.Field{id}, Rows: [][]core.Expr{{core.P(1)}},
				OnConflict: &core.OnConflict{Keys: []*core.Field{id}},
			}),
			feature: "ON CONFLICT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.stmt, mustDialect(t, tt.dialect))
			var unsupported *UnsupportedError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tt.dialect, unsupported.Dialect)
			assert.Equal(t, tt.feature, unsupported.Feature)
		})
	}
}

func TestRender_DeleteAndMigration(t *testing.T) {
	d := mustDialect(t, "postgres")

	sess := newSession(t)
	del := sess.Delete(orders, "o")
	stmt, err := del.Where(core.Lt(del.Col(orders.MustField("total")), 10)).AsDelete()
	require.NoError(t, err)

	res, err := Render(stmt, d)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM orders AS o WHERE o.total < $1", res.SQL)
	assert.Equal(t, []any{10}, res.Args)

	wipe, err := newSession(t).Delete(orders, "").Migration().AsDelete()
	require.NoError(t, err)
	sql, err := SQL(wipe, d)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM orders", sql)
}

func TestRender_InsertFromSelect(t *testing.T) {
	archive := core.NewTable("", "archive", []core.Column{
		{Name: "id", Type: "bigint"},
		{Name: "name", Type: "text"},
	})

	sess := newSession(t)
	ins := sess.Insert(archive).Columns(archive.Fields...)
	src := sess.SubSelect()
	src.Select(src.Field("u", users.MustField("id")), src.Field("u", users.MustField("name"))).
		From(users, "u")
	stmt, err := ins.FromSelect(src).AsInsert()
	require.NoError(t, err)

	sql, err := SQL(stmt, mustDialect(t, "sqlite"))
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO archive (id, name) SELECT u.id, u.name FROM users AS u", sql)
}

func TestRender_RequiresDialect(t *testing.T) {
	_, err := Render(simpleSelect(), nil)
	require.ErrorIs(t, err, ErrNoDialect)
}
