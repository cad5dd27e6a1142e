package core

import "strings"

// operand converts v into an expression. Expressions pass through; any
// other value becomes a bound Param.
func operand(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return &Param{Value: v}
}

// P returns a bound parameter.
func P(v any) *Param { return &Param{Value: v} }

// Raw returns a verbatim SQL fragment.
func Raw(sql string) *RawSQL { return &RawSQL{SQL: sql} }

// Null returns the NULL keyword.
func Null() *RawSQL { return &RawSQL{SQL: "NULL"} }

// Star returns *.
func Star() *StarExpr { return &StarExpr{} }

// StarOf returns alias.*.
func StarOf(alias string) *StarExpr { return &StarExpr{Alias: alias} }

// As labels an expression in a select list.
func As(e Expr, label string) *AliasedExpr { return &AliasedExpr{Expr: e, Label: label} }

func binary(op BinaryOp, l Expr, r any) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: l, Right: operand(r)}
}

// Eq returns l = r.
func Eq(l Expr, r any) *BinaryExpr { return binary(OpEq, l, r) }

// NotEq returns l <> r.
func NotEq(l Expr, r any) *BinaryExpr { return binary(OpNotEq, l, r) }

// Lt returns l < r.
func Lt(l Expr, r any) *BinaryExpr { return binary(OpLt, l, r) }

// Le returns l <= r.
func Le(l Expr, r any) *BinaryExpr { return binary(OpLe, l, r) }

// Gt returns l > r.
func Gt(l Expr, r any) *BinaryExpr { return binary(OpGt, l, r) }

// Ge returns l >= r.
func Ge(l Expr, r any) *BinaryExpr { return binary(OpGe, l, r) }

// Like returns l LIKE pattern.
func Like(l Expr, pattern any) *BinaryExpr { return binary(OpLike, l, pattern) }

// NotLike returns l NOT LIKE pattern.
func NotLike(l Expr, pattern any) *BinaryExpr { return binary(OpNotLike, l, pattern) }

// Add returns l + r.
func Add(l Expr, r any) *BinaryExpr { return binary(OpAdd, l, r) }

// Sub returns l - r.
func Sub(l Expr, r any) *BinaryExpr { return binary(OpSub, l, r) }

// Mul returns l * r.
func Mul(l Expr, r any) *BinaryExpr { return binary(OpMul, l, r) }

// Div returns l / r.
func Div(l Expr, r any) *BinaryExpr { return binary(OpDiv, l, r) }

// IsNull returns e IS NULL.
func IsNull(e Expr) *IsNullExpr { return &IsNullExpr{Expr: e} }

// IsNotNull returns e IS NOT NULL.
func IsNotNull(e Expr) *IsNullExpr { return &IsNullExpr{Expr: e, Not: true} }

func operands(vals []any) []Expr {
	out := make([]Expr, len(vals))
	for i, v := range vals {
		out[i] = operand(v)
	}
	return out
}

// In returns e IN (vals...).
func In(e Expr, vals ...any) *InExpr { return &InExpr{Expr: e, Values: operands(vals)} }

// NotIn returns e NOT IN (vals...).
func NotIn(e Expr, vals ...any) *InExpr {
	return &InExpr{Expr: e, Values: operands(vals), Not: true}
}

// Between returns e BETWEEN low AND high.
func Between(e Expr, low, high any) *BetweenExpr {
	return &BetweenExpr{Expr: e, Low: operand(low), High: operand(high)}
}

// NotBetween returns e NOT BETWEEN low AND high.
func NotBetween(e Expr, low, high any) *BetweenExpr {
	return &BetweenExpr{Expr: e, Low: operand(low), High: operand(high), Not: true}
}

func logical(op LogicalOp, terms []Expr) Expr {
	var kept []Expr
	for _, t := range terms {
		if t != nil {
			kept = append(kept, t)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &LogicalExpr{Op: op, Terms: kept}
}

// And joins predicates with AND. Nil terms are dropped; a single term is
// returned as is and no terms yield nil.
func And(terms ...Expr) Expr { return logical(LogicalAnd, terms) }

// Or joins predicates with OR, with the same rules as And.
func Or(terms ...Expr) Expr { return logical(LogicalOr, terms) }

// Not negates a predicate.
func Not(e Expr) *NotExpr { return &NotExpr{Expr: e} }

// Func returns a call to the named function.
func Func(name string, args ...any) *FuncCall {
	return &FuncCall{Name: strings.ToUpper(name), Args: operands(args)}
}

// CountStar returns COUNT(*).
func CountStar() *FuncCall { return &FuncCall{Name: "COUNT", Star: true} }

// Count returns COUNT(e).
func Count(e Expr) *FuncCall { return &FuncCall{Name: "COUNT", Args: []Expr{e}} }

// CountDistinct returns COUNT(DISTINCT e).
func CountDistinct(e Expr) *FuncCall {
	return &FuncCall{Name: "COUNT", Args: []Expr{e}, Distinct: true}
}

// Sum returns SUM(e).
func Sum(e Expr) *FuncCall { return &FuncCall{Name: "SUM", Args: []Expr{e}} }

// Avg returns AVG(e).
func Avg(e Expr) *FuncCall { return &FuncCall{Name: "AVG", Args: []Expr{e}} }

// Min returns MIN(e).
func Min(e Expr) *FuncCall { return &FuncCall{Name: "MIN", Args: []Expr{e}} }

// Max returns MAX(e).
func Max(e Expr) *FuncCall { return &FuncCall{Name: "MAX", Args: []Expr{e}} }

// Exists returns EXISTS (q).
func Exists(q *SelectStmt) *ExistsExpr { return &ExistsExpr{Query: q} }

// NotExists returns NOT EXISTS (q).
func NotExists(q *SelectStmt) *ExistsExpr { return &ExistsExpr{Query: q, Not: true} }

// InSub returns e IN (q).
func InSub(e Expr, q *SelectStmt) *InSubExpr { return &InSubExpr{Expr: e, Query: q} }

// NotInSub returns e NOT IN (q).
func NotInSub(e Expr, q *SelectStmt) *InSubExpr { return &InSubExpr{Expr: e, Query: q, Not: true} }

// Scalar uses q as a single value.
func Scalar(q *SelectStmt) *ScalarExpr { return &ScalarExpr{Query: q} }

// Asc sorts by e ascending.
func Asc(e Expr) SortItem { return SortItem{Expr: e} }

// Desc sorts by e descending.
func Desc(e Expr) SortItem { return SortItem{Expr: e, Desc: true} }
