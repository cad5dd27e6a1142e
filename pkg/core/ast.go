package core

// Expr is a marker interface for expression nodes.
type Expr interface {
	exprNode() // Marker method to distinguish expressions
}

// Stmt is a marker interface for finalized statements.
type Stmt interface {
	stmtNode() // Marker method to distinguish statements
	Kind() StmtKind
}

// StmtKind identifies the statement type of a Stmt.
type StmtKind int

const (
	// StmtSelect is a SELECT statement.
	StmtSelect StmtKind = iota
	// StmtInsert is an INSERT statement.
	StmtInsert
	// StmtUpdate is an UPDATE statement.
	StmtUpdate
	// StmtDelete is a DELETE statement.
	StmtDelete
	// StmtValues is a standalone VALUES list.
	StmtValues
)

// String returns the SQL keyword for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtSelect:
		return "SELECT"
	case StmtInsert:
		return "INSERT"
	case StmtUpdate:
		return "UPDATE"
	case StmtDelete:
		return "DELETE"
	case StmtValues:
		return "VALUES"
	default:
		return "UNKNOWN"
	}
}
