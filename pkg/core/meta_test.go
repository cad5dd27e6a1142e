package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFromSQL(t *testing.T) {
	tests := []struct {
		sql  string
		want TypeKind
	}{
		{"INTEGER", KindInt},
		{"bigint", KindInt},
		{"varchar(64)", KindString},
		{"character varying(10)", KindString},
		{"double precision", KindFloat},
		{"NUMERIC(10, 2)", KindDecimal},
		{"timestamp with time zone", KindTime},
		{"date", KindDate},
		{"jsonb", KindJSON},
		{"uuid", KindUUID},
		{"bytea", KindBytes},
		{"boolean", KindBool},
		{"geometry", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			dt := TypeFromSQL(tt.sql)
			assert.Equal(t, tt.want, dt.Kind)
			assert.Equal(t, tt.sql, dt.SQL)
		})
	}
}

func TestKindOfValue(t *testing.T) {
	var nilPtr *int
	n := 7
	type status string

	tests := []struct {
		name  string
		value any
		want  TypeKind
	}{
		{"nil", nil, KindUnknown},
		{"int", 5, KindInt},
		{"uint8", uint8(1), KindInt},
		{"float", 1.5, KindFloat},
		{"string", "x", KindString},
		{"bytes", []byte("x"), KindBytes},
		{"time", time.Now(), KindTime},
		{"bool", true, KindBool},
		{"nil pointer", nilPtr, KindUnknown},
		{"pointer", &n, KindInt},
		{"named string", status("open"), KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOfValue(tt.value))
		})
	}
}

func TestTypeKind_Accepts(t *testing.T) {
	tests := []struct {
		column TypeKind
		value  TypeKind
		want   bool
	}{
		{KindInt, KindInt, true},
		{KindInt, KindFloat, true},
		{KindDecimal, KindString, true},
		{KindUUID, KindString, true},
		{KindDate, KindTime, true},
		{KindInt, KindString, false},
		{KindBool, KindInt, false},
		{KindString, KindInt, false},
		{KindUnknown, KindBool, true},
		{KindTime, KindUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.column.String()+"<-"+tt.value.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.column.Accepts(tt.value))
		})
	}
}

func TestParseTypeKind(t *testing.T) {
	k, ok := ParseTypeKind(" Decimal ")
	require.True(t, ok)
	assert.Equal(t, KindDecimal, k)

	_, ok = ParseTypeKind("geometry")
	assert.False(t, ok)
}

func TestIsNil(t *testing.T) {
	var p *string
	var m map[string]int
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(p))
	assert.True(t, IsNil(m))
	assert.False(t, IsNil(0))
	assert.False(t, IsNil(""))
}

func TestNewTable(t *testing.T) {
	users := NewTable("public", "users", []Column{
		{Name: "id", Type: "bigint", PrimaryKey: true, ReadOnly: true},
		{Name: "email", Type: "text"},
		{Name: "nickname", Type: "text", Nullable: true},
	})

	assert.Equal(t, "public.users", users.QualifiedName())
	require.Len(t, users.Fields, 3)

	id := users.MustField("ID")
	assert.Same(t, users, id.Table)
	assert.False(t, id.Updatable)
	assert.Equal(t, []*Field{id}, users.PrimaryKey())

	nick, ok := users.Field("nickname")
	require.True(t, ok)
	assert.True(t, nick.Nullable)
	assert.True(t, nick.Updatable)

	_, ok = users.Field("missing")
	assert.False(t, ok)
	assert.Panics(t, func() { users.MustField("missing") })
}
