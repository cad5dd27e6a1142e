package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

func TestValues_DefaultColumnNames(t *testing.T) {
	sess := newTestSession(t)

	stmt, err := sess.Values().Row(1, "a").Row(2, "b").AsValues()
	require.NoError(t, err)
	assert.Equal(t, []string{"column1", "column2"}, stmt.ColumnNames())
	assert.Len(t, stmt.Rows(), 2)
	assert.Equal(t, 0, sess.Depth())
}

func TestValues_RowWidth(t *testing.T) {
	sess := newTestSession(t)
	b := sess.Values().Row(1, "a").Row(2)

	var count *ValueCountError
	require.ErrorAs(t, b.Err(), &count)
	assert.Equal(t, 2, count.Want)
	assert.Equal(t, 1, count.Got)

	b = newTestSession(t).Values().ColumnNames("id", "name").Row(1)
	require.ErrorAs(t, b.Err(), &count)
	assert.Equal(t, 2, count.Want)
}

func TestValues_EmptyRow(t *testing.T) {
	b := newTestSession(t).Values().Row()
	require.ErrorIs(t, b.Err(), ErrEmptyRow)
	assert.Equal(t, KindValidation, KindOf(b.Err()))
	assert.Equal(t, "criteria: row: row has no values", b.Err().Error())

	b = newTestSession(t).Values().Row(1, "a").Row()
	require.ErrorIs(t, b.Err(), ErrEmptyRow)

	f := newFixture()
	ins := newTestSession(t).Insert(f.users).Values()
	require.ErrorIs(t, ins.Err(), ErrEmptyRow)
}

func TestValues_Empty(t *testing.T) {
	_, err := newTestSession(t).Values().AsValues()
	require.ErrorIs(t, err, ErrMissingValues)

	b := newTestSession(t).Values().ColumnNames()
	require.ErrorIs(t, b.Err(), ErrEmptyColumnList)
}

func TestValues_AsDerivedTable(t *testing.T) {
	sess := newTestSession(t)

	outer := sess.Select()
	name := outer.Ref("v", "name", core.KindString)
	id := outer.Ref("v", "id")

	sub := sess.SubValues().ColumnNames("id", "name").Row(1, "ann").Row(2, nil)
	stmt, err := outer.Select(id, name).FromSub(sub, "v").AsSelect()
	require.NoError(t, err)

	require.True(t, name.Resolved())
	assert.Equal(t, core.KindString, name.Type().Kind)
	assert.True(t, name.Nullable())
	assert.Equal(t, core.KindInt, id.Type().Kind)
	assert.False(t, id.Nullable())

	src := stmt.From()
	require.Len(t, src, 1)
	assert.IsType(t, &core.ValuesStmt{}, src[0].Sub.Stmt)
}
