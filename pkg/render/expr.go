package render

import (
	"fmt"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

func (p *printer) formatExpr(e core.Expr) {
	if core.IsNil(e) {
		p.fail(fmt.Errorf("render: nil expression"))
		return
	}

	switch expr := e.(type) {
	case *core.Field:
		p.ident(expr.Name)
	case *core.QualifiedField:
		p.formatColumnRef(expr.Alias, expr.Field.Name)
	case *core.DerivedField:
		if !expr.Resolved() {
			p.fail(fmt.Errorf("%w: %s", ErrUnresolved, expr.Name()))
			return
		}
		p.formatColumnRef(expr.Alias, expr.Column)
	case *core.StarExpr:
		if expr.Alias != "" {
			p.ident(expr.Alias)
			p.write(".")
		}
		p.write("*")
	case *core.AliasedExpr:
		p.formatExpr(expr.Expr)
		p.write(" AS ")
		p.ident(expr.Label)
	case *core.Param:
		p.bind(expr.Value)
	case *core.RawSQL:
		p.write(expr.SQL)
	case *core.BinaryExpr:
		p.formatBinaryExpr(expr)
	case *core.LogicalExpr:
		p.formatLogicalExpr(expr)
	case *core.NotExpr:
		p.write("NOT ")
		p.formatOperand(expr.Expr)
	case *core.IsNullExpr:
		p.formatOperand(expr.Expr)
		if expr.Not {
			p.write(" IS NOT NULL")
		} else {
			p.write(" IS NULL")
		}
	case *core.InExpr:
		p.formatInExpr(expr)
	case *core.BetweenExpr:
		p.formatOperand(expr.Expr)
		if expr.Not {
			p.write(" NOT")
		}
		p.write(" BETWEEN ")
		p.formatOperand(expr.Low)
		p.write(" AND ")
		p.formatOperand(expr.High)
	case *core.FuncCall:
		p.formatFuncCall(expr)
	case *core.InSubExpr:
		p.formatOperand(expr.Expr)
		if expr.Not {
			p.write(" NOT")
		}
		p.write(" IN ")
		p.formatSubquery(expr.Query)
	case *core.ExistsExpr:
		if expr.Not {
			p.write("NOT ")
		}
		p.write("EXISTS ")
		p.formatSubquery(expr.Query)
	case *core.ScalarExpr:
		p.formatSubquery(expr.Query)
	default:
		p.fail(fmt.Errorf("render: unsupported expression %T", e))
	}
}

func (p *printer) formatColumnRef(alias, column string) {
	if alias != "" {
		p.ident(alias)
		p.write(".")
	}
	p.ident(column)
}

// compound reports whether e needs parentheses when used as an operand.
func compound(e core.Expr) bool {
	switch e.(type) {
	case *core.BinaryExpr, *core.LogicalExpr, *core.NotExpr, *core.BetweenExpr,
		*core.IsNullExpr, *core.InExpr, *core.InSubExpr, *core.ExistsExpr:
		return true
	}
	return false
}

// formatOperand prints e, parenthesized when it is itself an operator expression.
func (p *printer) formatOperand(e core.Expr) {
	if compound(e) {
		p.write("(")
		p.formatExpr(e)
		p.write(")")
		return
	}
	p.formatExpr(e)
}

func (p *printer) formatBinaryExpr(expr *core.BinaryExpr) {
	p.formatOperand(expr.Left)
	p.space()
	p.write(string(expr.Op))
	p.space()
	p.formatOperand(expr.Right)
}

func (p *printer) formatLogicalExpr(expr *core.LogicalExpr) {
	p.formatList(len(expr.Terms), func(i int) {
		t := expr.Terms[i]
		if _, ok := t.(*core.LogicalExpr); ok {
			p.write("(")
			p.formatExpr(t)
			p.write(")")
			return
		}
		p.formatExpr(t)
	}, " "+string(expr.Op)+" ")
}

// formatInExpr prints an IN list. An empty list can never match, so it is
// written as a constant predicate.
func (p *printer) formatInExpr(expr *core.InExpr) {
	if len(expr.Values) == 0 {
		if expr.Not {
			p.write("1 = 1")
		} else {
			p.write("1 = 0")
		}
		return
	}
	p.formatOperand(expr.Expr)
	if expr.Not {
		p.write(" NOT")
	}
	p.write(" IN (")
	p.formatList(len(expr.Values), func(i int) {
		p.formatExpr(expr.Values[i])
	}, ", ")
	p.write(")")
}

func (p *printer) formatFuncCall(fn *core.FuncCall) {
	p.write(fn.Name)
	p.write("(")
	if fn.Star {
		p.write("*")
		p.write(")")
		return
	}
	if fn.Distinct {
		p.write("DISTINCT ")
	}
	p.formatList(len(fn.Args), func(i int) {
		p.formatExpr(fn.Args[i])
	}, ", ")
	p.write(")")
}

func (p *printer) formatSubquery(q *core.SelectStmt) {
	p.write("(")
	p.formatSelectStmt(q)
	p.write(")")
}

// formatPredicates prints a predicate list joined with AND.
func (p *printer) formatPredicates(preds []core.Expr) {
	p.formatList(len(preds), func(i int) {
		if len(preds) > 1 {
			if l, ok := preds[i].(*core.LogicalExpr); ok && l.Op == core.LogicalOr {
				p.write("(")
				p.formatExpr(l)
				p.write(")")
				return
			}
		}
		p.formatExpr(preds[i])
	}, " AND ")
}
