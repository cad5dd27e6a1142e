package core

// OutputName returns the column name an expression contributes to a select
// list, or "" for unlabeled computed expressions.
func OutputName(e Expr) string {
	switch x := e.(type) {
	case *AliasedExpr:
		return x.Label
	case *Field:
		return x.Name
	case *QualifiedField:
		return x.Field.Name
	case *DerivedField:
		return x.Column
	}
	return ""
}

// TypeOf infers the type and nullability of an expression.
func TypeOf(e Expr) (DataType, bool) {
	switch x := e.(type) {
	case *Field:
		return x.Type, x.Nullable
	case *QualifiedField:
		return x.Field.Type, x.Field.Nullable
	case *DerivedField:
		return x.Type(), x.Nullable()
	case *AliasedExpr:
		return TypeOf(x.Expr)
	case *Param:
		if IsNil(x.Value) {
			return DataType{}, true
		}
		return DataType{Kind: KindOfValue(x.Value)}, false
	case *RawSQL:
		switch x.SQL {
		case "NULL":
			return DataType{}, true
		case "TRUE", "FALSE":
			return DataType{SQL: "boolean", Kind: KindBool}, false
		}
		return DataType{}, true
	case *BinaryExpr:
		lt, ln := TypeOf(x.Left)
		_, rn := TypeOf(x.Right)
		if x.Op.IsComparison() {
			return DataType{SQL: "boolean", Kind: KindBool}, ln || rn
		}
		return DataType{Kind: lt.Kind}, ln || rn
	case *LogicalExpr, *NotExpr, *IsNullExpr, *InExpr, *BetweenExpr, *InSubExpr, *ExistsExpr:
		return DataType{SQL: "boolean", Kind: KindBool}, false
	case *FuncCall:
		return funcType(x)
	case *ScalarExpr:
		cols := x.Query.OutputColumns()
		if len(cols) > 0 {
			return cols[0].Type, true
		}
	}
	return DataType{}, true
}

func funcType(f *FuncCall) (DataType, bool) {
	var arg DataType
	if len(f.Args) > 0 {
		arg, _ = TypeOf(f.Args[0])
	}
	switch f.Name {
	case "COUNT":
		return DataType{SQL: "bigint", Kind: KindInt}, false
	case "SUM":
		if arg.Kind == KindInt {
			return DataType{SQL: "bigint", Kind: KindInt}, true
		}
		return DataType{SQL: "numeric", Kind: KindDecimal}, true
	case "AVG":
		return DataType{SQL: "numeric", Kind: KindDecimal}, true
	case "MIN", "MAX":
		return arg, true
	}
	return DataType{}, true
}
