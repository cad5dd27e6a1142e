package databricks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

func TestBuild(t *testing.T) {
	d := Databricks
	require.NotNil(t, d)

	assert.Equal(t, "databricks", d.Name)
	assert.Equal(t, "`", d.Identifiers.Quote)
	assert.Equal(t, "default", d.DefaultSchema)
	assert.Equal(t, ":p4", d.FormatPlaceholder(4))
}

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("databricks")
	require.True(t, ok)
	assert.Same(t, Databricks, d)
}

func TestFunctionClassifications(t *testing.T) {
	d := Databricks

	assert.True(t, d.IsAggregate("collect_list"))
	assert.True(t, d.IsAggregate("collect_set"))
	assert.False(t, d.IsAggregate("coalesce"))
	assert.Equal(t, "`semi`", d.QuoteIdentifierIfNeeded("semi"))
}
