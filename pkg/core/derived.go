package core

// DerivedField references a column of a sub-query by alias (alias.column).
//
// A DerivedField may be created before the sub-query it names exists. Until
// Bind is called it is unresolved: Type reports KindUnknown and renderers
// reject it. Bind runs exactly once.
type DerivedField struct {
	Alias  string
	Column string
	Expect TypeKind // KindUnknown accepts any column type

	bound    bool
	target   Expr
	typ      DataType
	nullable bool
}

func (*DerivedField) exprNode() {}

// NewDerivedField returns an unresolved reference to alias.column.
func NewDerivedField(alias, column string, expect TypeKind) *DerivedField {
	return &DerivedField{Alias: alias, Column: column, Expect: expect}
}

// Bind resolves the reference to the sub-query column it names.
// Binding twice panics.
func (d *DerivedField) Bind(target Expr, t DataType, nullable bool) {
	if d.bound {
		panic("core: derived field " + d.Alias + "." + d.Column + " bound twice")
	}
	d.bound = true
	d.target = target
	d.typ = t
	d.nullable = nullable
}

// Resolved reports whether Bind has been called.
func (d *DerivedField) Resolved() bool { return d.bound }

// Type returns the bound column type.
func (d *DerivedField) Type() DataType { return d.typ }

// Nullable reports whether the bound column is nullable.
func (d *DerivedField) Nullable() bool { return d.nullable }

// Target returns the sub-query expression the reference is bound to.
func (d *DerivedField) Target() Expr { return d.target }

// Name returns alias.column.
func (d *DerivedField) Name() string { return d.Alias + "." + d.Column }
