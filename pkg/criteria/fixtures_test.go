package criteria

import (
	"testing"

	"github.com/leapstack-labs/leapcrit/internal/testutil"
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

type fixture struct {
	users  *core.Table
	orders *core.Table
}

func newFixture() fixture {
	return fixture{
		users: core.NewTable("public", "users", []core.Column{
			{Name: "id", Type: "bigint", PrimaryKey: true},
			{Name: "name", Type: "text"},
			{Name: "email", Type: "varchar(255)", Nullable: true},
			{Name: "created_at", Type: "timestamp", ReadOnly: true},
		}),
		orders: core.NewTable("public", "orders", []core.Column{
			{Name: "id", Type: "bigint", PrimaryKey: true},
			{Name: "user_id", Type: "bigint"},
			{Name: "total", Type: "numeric(10,2)", Nullable: true},
			{Name: "status", Type: "text"},
		}),
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(WithLogger(testutil.NewTestLogger(t)))
}

// spendSub returns a finalized sub-query exposing user_id and spent.
func spendSub(f fixture, alias string) *core.SubQuery {
	uid := &core.QualifiedField{Alias: "o", Field: f.orders.MustField("user_id")}
	total := &core.QualifiedField{Alias: "o", Field: f.orders.MustField("total")}
	stmt := core.NewSelect(core.SelectParts{
		Selections: []core.Expr{uid, core.As(core.Sum(total), "spent")},
		From:       []core.TableBlock{{Table: f.orders, Alias: "o"}},
		GroupBy:    []core.Expr{uid},
	})
	return &core.SubQuery{Alias: alias, Stmt: stmt}
}
