package core

import (
	"reflect"
	"strings"
	"time"
)

// TypeKind is the coarse type family of a column or value.
type TypeKind int

const (
	// KindUnknown is compatible with every other kind.
	KindUnknown TypeKind = iota
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindString
	KindBytes
	KindTime
	KindDate
	KindJSON
	KindUUID
)

var kindNames = map[TypeKind]string{
	KindUnknown: "unknown",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindDecimal: "decimal",
	KindString:  "string",
	KindBytes:   "bytes",
	KindTime:    "time",
	KindDate:    "date",
	KindJSON:    "json",
	KindUUID:    "uuid",
}

// String returns the lowercase name of the kind.
func (k TypeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseTypeKind returns the kind for a name produced by TypeKind.String.
func ParseTypeKind(s string) (TypeKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindUnknown, false
}

// GoType returns the Go type values of this kind scan into.
func (k TypeKind) GoType() reflect.Type {
	switch k {
	case KindBool:
		return reflect.TypeOf(false)
	case KindInt:
		return reflect.TypeOf(int64(0))
	case KindFloat:
		return reflect.TypeOf(float64(0))
	case KindDecimal, KindString, KindUUID, KindDate:
		return reflect.TypeOf("")
	case KindBytes, KindJSON:
		return reflect.TypeOf([]byte(nil))
	case KindTime:
		return reflect.TypeOf(time.Time{})
	default:
		return reflect.TypeOf((*any)(nil)).Elem()
	}
}

func (k TypeKind) numeric() bool {
	return k == KindInt || k == KindFloat || k == KindDecimal
}

// Accepts reports whether a value of kind v may be stored in a column of kind k.
func (k TypeKind) Accepts(v TypeKind) bool {
	switch {
	case k == KindUnknown || v == KindUnknown || k == v:
		return true
	case k.numeric() && v.numeric():
		return true
	case v == KindString:
		return k == KindDecimal || k == KindUUID || k == KindJSON || k == KindDate || k == KindTime
	case v == KindBytes:
		return k == KindJSON || k == KindUUID
	case v == KindTime:
		return k == KindDate
	}
	return false
}

// DataType describes the type of a column as declared and as classified.
type DataType struct {
	SQL  string   // declared type, e.g. "varchar(64)"
	Kind TypeKind // classified family
}

// TypeFromSQL classifies a declared SQL column type.
func TypeFromSQL(sqlType string) DataType {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	base := t
	if i := strings.IndexAny(base, "( "); i > 0 {
		base = base[:i]
	}
	dt := DataType{SQL: sqlType}
	switch base {
	case "bool", "boolean":
		dt.Kind = KindBool
	case "int", "int2", "int4", "int8", "integer", "smallint", "bigint", "tinyint", "mediumint",
		"serial", "bigserial", "smallserial", "hugeint", "ubigint", "uinteger":
		dt.Kind = KindInt
	case "real", "float", "float4", "float8", "double":
		dt.Kind = KindFloat
	case "decimal", "numeric", "number", "money":
		dt.Kind = KindDecimal
	case "char", "varchar", "text", "string", "character", "nvarchar", "nchar", "clob",
		"tinytext", "mediumtext", "longtext", "enum", "citext":
		dt.Kind = KindString
	case "blob", "bytea", "binary", "varbinary", "longblob", "mediumblob", "tinyblob":
		dt.Kind = KindBytes
	case "timestamp", "timestamptz", "datetime", "time", "timetz":
		dt.Kind = KindTime
	case "date":
		dt.Kind = KindDate
	case "json", "jsonb", "variant", "object":
		dt.Kind = KindJSON
	case "uuid", "uniqueidentifier":
		dt.Kind = KindUUID
	default:
		switch {
		case strings.HasPrefix(t, "double precision"):
			dt.Kind = KindFloat
		case strings.HasPrefix(t, "character varying"):
			dt.Kind = KindString
		case strings.HasPrefix(t, "timestamp"):
			dt.Kind = KindTime
		}
	}
	return dt
}

// KindOfValue classifies a Go value bound as a statement argument.
func KindOfValue(v any) TypeKind {
	switch v.(type) {
	case nil:
		return KindUnknown
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case []byte:
		return KindBytes
	case time.Time:
		return KindTime
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return KindUnknown
		}
		return KindOfValue(rv.Elem().Interface())
	}
	switch rv.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	}
	return KindUnknown
}

// IsNil reports whether v is nil or a typed nil pointer, map, slice or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Table describes a database table. Identity is the pointer.
type Table struct {
	Schema string
	Name   string
	Fields []*Field
}

// Field describes a column of a Table.
type Field struct {
	Table      *Table
	Name       string
	Type       DataType
	Nullable   bool
	Updatable  bool
	PrimaryKey bool
}

func (*Field) exprNode() {}

// NewTable builds a table and its fields from column descriptors.
func NewTable(schema, name string, cols []Column) *Table {
	t := &Table{Schema: schema, Name: name}
	for _, c := range cols {
		t.Fields = append(t.Fields, &Field{
			Table:      t,
			Name:       c.Name,
			Type:       TypeFromSQL(c.Type),
			Nullable:   c.Nullable,
			Updatable:  !c.ReadOnly,
			PrimaryKey: c.PrimaryKey,
		})
	}
	return t
}

// QualifiedName returns schema.name, or name when no schema is set.
func (t *Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Field returns the field with the given name; lookup is case-insensitive.
func (t *Table) Field(name string) (*Field, bool) {
	for _, f := range t.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return nil, false
}

// MustField is like Field but panics when the column does not exist.
func (t *Table) MustField(name string) *Field {
	f, ok := t.Field(name)
	if !ok {
		panic("core: table " + t.QualifiedName() + " has no column " + name)
	}
	return f
}

// PrimaryKey returns the primary key fields in declaration order.
func (t *Table) PrimaryKey() []*Field {
	var pk []*Field
	for _, f := range t.Fields {
		if f.PrimaryKey {
			pk = append(pk, f)
		}
	}
	return pk
}
