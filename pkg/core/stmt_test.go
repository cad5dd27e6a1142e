package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() (*Table, *Table) {
	users := NewTable("", "users", []Column{
		{Name: "id", Type: "bigint", PrimaryKey: true},
		{Name: "name", Type: "text"},
	})
	orders := NewTable("", "orders", []Column{
		{Name: "id", Type: "bigint", PrimaryKey: true},
		{Name: "user_id", Type: "bigint"},
		{Name: "total", Type: "numeric(10,2)", Nullable: true},
	})
	return users, orders
}

func TestSelectStmt_AccessorsReturnCopies(t *testing.T) {
	users, _ := testTables()
	id := &QualifiedField{Alias: "u", Field: users.MustField("id")}
	where := []Expr{Eq(id, 1)}

	stmt := NewSelect(SelectParts{
		Selections: []Expr{id},
		From:       []TableBlock{{Table: users, Alias: "u"}},
		Where:      where,
		Limit:      &Limit{RowCount: 10, HasRowCount: true},
	})

	// mutate the input after construction
	where[0] = nil

	got := stmt.Where()
	require.Len(t, got, 1)
	assert.NotNil(t, got[0])

	// mutate the returned copies
	got[0] = nil
	stmt.From()[0].Alias = "x"
	stmt.Limit().RowCount = 99

	assert.NotNil(t, stmt.Where()[0])
	assert.Equal(t, "u", stmt.From()[0].Alias)
	assert.Equal(t, int64(10), stmt.Limit().RowCount)
}

func TestSelectStmt_OutputColumns(t *testing.T) {
	users, orders := testTables()
	uid := &QualifiedField{Alias: "o", Field: orders.MustField("user_id")}
	total := &QualifiedField{Alias: "o", Field: orders.MustField("total")}

	stmt := NewSelect(SelectParts{
		Selections: []Expr{uid, As(Sum(total), "spent"), CountStar(), As(CountStar(), "n")},
		From:       []TableBlock{{Table: orders, Alias: "o"}},
		GroupBy:    []Expr{uid},
	})

	cols := stmt.OutputColumns()
	require.Len(t, cols, 3)
	assert.Equal(t, "user_id", cols[0].Name)
	assert.Equal(t, KindInt, cols[0].Type.Kind)
	assert.False(t, cols[0].Nullable)
	assert.Equal(t, "spent", cols[1].Name)
	assert.Equal(t, KindDecimal, cols[1].Type.Kind)
	assert.True(t, cols[1].Nullable)
	assert.Equal(t, "n", cols[2].Name)
	assert.Equal(t, KindInt, cols[2].Type.Kind)

	star := NewSelect(SelectParts{
		From: []TableBlock{
			{Table: users, Alias: "u"},
			{Kind: JoinLeft, Table: orders, Alias: "o", On: []Expr{Eq(uid, &QualifiedField{Alias: "u", Field: users.MustField("id")})}},
		},
	})
	starCols := star.OutputColumns()
	require.Len(t, starCols, 5)
	assert.False(t, starCols[0].Nullable)
	assert.True(t, starCols[3].Nullable, "left-joined columns are nullable")
}

func TestSubQuery_Columns(t *testing.T) {
	values := NewValues([]string{"code", "label"}, [][]Expr{
		{P(1), P("one")},
		{P(2), P(nil)},
	})
	sq := &SubQuery{Alias: "v", Stmt: values}

	code, ok := sq.Column("code")
	require.True(t, ok)
	assert.Equal(t, KindInt, code.Type.Kind)
	assert.False(t, code.Nullable)

	label, ok := sq.Column("label")
	require.True(t, ok)
	assert.Equal(t, KindString, label.Type.Kind)
	assert.True(t, label.Nullable)

	_, ok = sq.Column("missing")
	assert.False(t, ok)
}

func TestDerivedField_BindOnce(t *testing.T) {
	d := NewDerivedField("d", "total", KindUnknown)
	assert.False(t, d.Resolved())
	assert.Equal(t, KindUnknown, d.Type().Kind)

	target := P(1)
	d.Bind(target, DataType{Kind: KindDecimal}, true)
	assert.True(t, d.Resolved())
	assert.Equal(t, KindDecimal, d.Type().Kind)
	assert.True(t, d.Nullable())
	assert.Same(t, target, d.Target())
	assert.Equal(t, "d.total", d.Name())

	assert.Panics(t, func() { d.Bind(target, DataType{}, false) })
}

func TestLogicalHelpers(t *testing.T) {
	a := IsNull(Raw("a"))
	b := IsNull(Raw("b"))

	assert.Nil(t, And())
	assert.Same(t, a, And(nil, a))

	or, ok := Or(a, b).(*LogicalExpr)
	require.True(t, ok)
	assert.Equal(t, LogicalOr, or.Op)
	assert.Equal(t, []Expr{a, b}, or.Terms)
}

func TestJoinKind_RequiresOn(t *testing.T) {
	assert.False(t, JoinNone.RequiresOn())
	assert.False(t, JoinCross.RequiresOn())
	for _, k := range []JoinKind{JoinInner, JoinLeft, JoinRight, JoinFull, JoinStraight} {
		assert.True(t, k.RequiresOn(), k.String())
	}
}
