package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/pkg/core"
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

func TestBuild(t *testing.T) {
	d := SQLite
	require.NotNil(t, d)

	assert.Equal(t, "sqlite", d.Name)
	assert.Equal(t, "main", d.DefaultSchema)
	assert.True(t, Config.Features.Returning)
	assert.False(t, Config.Features.RowLocking)
	assert.True(t, d.SupportsJoin(core.JoinFull))
	assert.False(t, d.SupportsJoin(core.JoinStraight))
}

func TestDialectRegistration(t *testing.T) {
	_, ok := dialect.Get("sqlite")
	assert.True(t, ok)
}

func TestFunctionClassifications(t *testing.T) {
	assert.True(t, SQLite.IsAggregate("total"))
	assert.True(t, SQLite.IsAggregate("json_group_array"))
	assert.Equal(t, dialect.FuncGenerator, SQLite.FunctionKind("random"))
	assert.Equal(t, `"pragma"`, SQLite.QuoteIdentifierIfNeeded("pragma"))
}
