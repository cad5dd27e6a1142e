package meta

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

type fakeIntrospector struct {
	tables map[string]*core.TableMetadata
	fail   string
	calls  atomic.Int32
}

func (f *fakeIntrospector) TableNames(context.Context) ([]string, error) {
	names := make([]string, 0, len(f.tables))
	for n := range f.tables {
		names = append(names, n)
	}
	return names, nil
}

func (f *fakeIntrospector) TableMetadata(ctx context.Context, table string) (*core.TableMetadata, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if table == f.fail {
		return nil, errors.New("boom")
	}
	md, ok := f.tables[table]
	if !ok {
		return nil, ErrUnknownTable
	}
	return md, nil
}

func newFake() *fakeIntrospector {
	return &fakeIntrospector{tables: map[string]*core.TableMetadata{
		"users": {Schema: "main", Name: "users", Columns: []core.Column{
			{Name: "id", Type: "INTEGER", PrimaryKey: true},
			{Name: "name", Type: "TEXT"},
		}},
		"orders": {Schema: "main", Name: "orders", Columns: []core.Column{
			{Name: "id", Type: "INTEGER", PrimaryKey: true},
			{Name: "total", Type: "DECIMAL(10,2)", Nullable: true},
		}},
	}}
}

func TestLoadTablesKeepsOrder(t *testing.T) {
	fake := newFake()
	tables, err := LoadTables(context.Background(), fake, []string{"orders", "users"}, 1)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "orders", tables[0].Name)
	assert.Equal(t, "users", tables[1].Name)
	assert.Equal(t, core.KindDecimal, tables[0].MustField("total").Type.Kind)
}

func TestLoadTablesFailure(t *testing.T) {
	fake := newFake()
	fake.fail = "users"

	_, err := LoadTables(context.Background(), fake, []string{"orders", "users"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "introspect users")
}

func TestLoadTablesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadTables(ctx, newFake(), []string{"users"}, 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestIntrospectedProvider(t *testing.T) {
	fake := newFake()
	p := NewIntrospected(fake, 4)

	tables, err := p.Tables(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables, 2)

	users, err := p.Table(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, "main.users", users.QualifiedName())

	_, err = p.Table(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownTable)

	cat, err := Load(context.Background(), p)
	require.NoError(t, err)
	_, ok := cat.Lookup("MAIN.ORDERS")
	assert.True(t, ok)
}

func TestCatalogLookup(t *testing.T) {
	users := core.NewTable("public", "users", []core.Column{{Name: "id", Type: "bigint"}})
	cat := NewCatalog(users)

	for _, name := range []string{"users", "Users", "public.users"} {
		got, err := cat.Table(context.Background(), name)
		require.NoError(t, err, name)
		assert.Same(t, users, got)
	}

	_, err := cat.Table(context.Background(), "orders")
	require.ErrorIs(t, err, ErrUnknownTable)

	same, err := Load(context.Background(), cat)
	require.NoError(t, err)
	assert.Same(t, cat, same)
}

func TestLoadSchemaFile(t *testing.T) {
	cat, err := LoadSchemaFile("testdata/schema.yaml")
	require.NoError(t, err)

	tables, err := cat.Tables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "public.orders", tables[0].QualifiedName())

	users, ok := cat.Lookup("users")
	require.True(t, ok)
	assert.Len(t, users.PrimaryKey(), 1)
	assert.True(t, users.MustField("email").Nullable)
	assert.False(t, users.MustField("created_at").Updatable)
	assert.True(t, users.MustField("name").Updatable)
	assert.Equal(t, core.KindTime, users.MustField("created_at").Type.Kind)
}

func TestParseSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "tables:\n  - name: t\n    colums: []\n", "colums"},
		{"no name", "tables:\n  - columns: [{name: id, type: int}]\n", "table without a name"},
		{"no columns", "tables:\n  - name: t\n", "no columns"},
		{"no type", "tables:\n  - name: t\n    columns: [{name: id}]\n", "missing type"},
		{"dup column", "tables:\n  - name: t\n    columns: [{name: id, type: int}, {name: id, type: int}]\n", "declared twice"},
		{"dup table", "tables:\n  - {name: t, columns: [{name: id, type: int}]}\n  - {name: t, columns: [{name: id, type: int}]}\n", "table t: declared twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseSchemaEmpty(t *testing.T) {
	cat, err := ParseSchema(strings.NewReader(""))
	require.NoError(t, err)
	tables, _ := cat.Tables(context.Background())
	assert.Empty(t, tables)
}
