package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/internal/testutil"
	"github.com/leapstack-labs/leapcrit/pkg/core"
	"github.com/leapstack-labs/leapcrit/pkg/criteria"
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
	_ "github.com/leapstack-labs/leapcrit/pkg/dialects/all"
)

var (
	users = core.NewTable("", "users", []core.Column{
		{Name: "id", Type: "bigint", PrimaryKey: true},
		{Name: "name", Type: "text"},
		{Name: "email", Type: "varchar(255)", Nullable: true},
	})
	orders = core.NewTable("", "orders", []core.Column{
		{Name: "id", Type: "bigint", PrimaryKey: true},
		{Name: "user_id", Type: "bigint"},
		{Name: "total", Type: "numeric(10,2)", Nullable: true},
	})
)

func newSession(t *testing.T) *criteria.Session {
	t.Helper()
	return criteria.NewSession(criteria.WithLogger(testutil.NewTestLogger(t)))
}

func mustDialect(t *testing.T, name string) *dialect.Dialect {
	t.Helper()
	d, err := dialect.Lookup(name)
	require.NoError(t, err)
	return d
}

// simpleSelect is SELECT u.id, u.name FROM users u WHERE u.id = 5
// ORDER BY u.name LIMIT 10 OFFSET 20.
func simpleSelect() *core.SelectStmt {
	id := &core.QualifiedField{Alias: "u", Field: users.MustField("id")}
	name := &core.QualifiedField{Alias: "u", Field: users.MustField("name")}
	return core.NewSelect(core.SelectParts{
		Selections: []core.Expr{id, name},
		From:       []core.TableBlock{{Table: users, Alias: "u"}},
		Where:      []core.Expr{core.Eq(id, 5)},
		OrderBy:    []core.SortItem{core.Asc(name)},
		Limit:      &core.Limit{RowCount: 10, HasRowCount: true, Offset: 20},
	})
}
