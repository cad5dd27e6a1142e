package core

// ---------- Column References ----------

// QualifiedField is a column referenced through a table alias (alias.column).
// Instances are created and cached by the criteria Context.
type QualifiedField struct {
	Alias string
	Field *Field
}

func (*QualifiedField) exprNode() {}

// StarExpr represents * or alias.*.
type StarExpr struct {
	Alias string
}

func (*StarExpr) exprNode() {}

// AliasedExpr labels an expression in a select list (expr AS label).
type AliasedExpr struct {
	Expr  Expr
	Label string
}

func (*AliasedExpr) exprNode() {}

// ---------- Values ----------

// Param is a bound argument. Its value is never interpolated into SQL text.
type Param struct {
	Value any
}

func (*Param) exprNode() {}

// RawSQL is a verbatim SQL fragment such as NULL, TRUE or CURRENT_TIMESTAMP.
type RawSQL struct {
	SQL string
}

func (*RawSQL) exprNode() {}

// ---------- Operators ----------

// BinaryOp is a comparison or arithmetic operator.
type BinaryOp string

// Binary operators.
const (
	OpEq      BinaryOp = "="
	OpNotEq   BinaryOp = "<>"
	OpLt      BinaryOp = "<"
	OpLe      BinaryOp = "<="
	OpGt      BinaryOp = ">"
	OpGe      BinaryOp = ">="
	OpLike    BinaryOp = "LIKE"
	OpNotLike BinaryOp = "NOT LIKE"
	OpAdd     BinaryOp = "+"
	OpSub     BinaryOp = "-"
	OpMul     BinaryOp = "*"
	OpDiv     BinaryOp = "/"
)

// IsComparison reports whether the operator yields a boolean.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return false
	}
	return true
}

// BinaryExpr represents left op right.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// LogicalOp joins predicates.
type LogicalOp string

// Logical operators.
const (
	LogicalAnd LogicalOp = "AND"
	LogicalOr  LogicalOp = "OR"
)

// LogicalExpr joins two or more predicates with AND or OR.
type LogicalExpr struct {
	Op    LogicalOp
	Terms []Expr
}

func (*LogicalExpr) exprNode() {}

// NotExpr negates a predicate.
type NotExpr struct {
	Expr Expr
}

func (*NotExpr) exprNode() {}

// IsNullExpr represents expr IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}

// InExpr represents expr [NOT] IN (values...).
type InExpr struct {
	Expr   Expr
	Values []Expr
	Not    bool
}

func (*InExpr) exprNode() {}

// BetweenExpr represents expr [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr Expr
	Low  Expr
	High Expr
	Not  bool
}

func (*BetweenExpr) exprNode() {}

// FuncCall represents a function call such as COUNT(DISTINCT x).
type FuncCall struct {
	Name     string
	Args     []Expr
	Distinct bool
	Star     bool // COUNT(*)
}

func (*FuncCall) exprNode() {}

// ---------- Sub-query Expressions ----------

// InSubExpr represents expr [NOT] IN (SELECT ...).
type InSubExpr struct {
	Expr  Expr
	Query *SelectStmt
	Not   bool
}

func (*InSubExpr) exprNode() {}

// ExistsExpr represents [NOT] EXISTS (SELECT ...).
type ExistsExpr struct {
	Query *SelectStmt
	Not   bool
}

func (*ExistsExpr) exprNode() {}

// ScalarExpr is a sub-query used as a single value.
type ScalarExpr struct {
	Query *SelectStmt
}

func (*ScalarExpr) exprNode() {}
