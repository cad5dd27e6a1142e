package render

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

func (p *printer) stmt(s core.Stmt) {
	switch stmt := s.(type) {
	case *core.SelectStmt:
		p.formatSelectStmt(stmt)
	case *core.InsertStmt:
		p.formatInsertStmt(stmt)
	case *core.UpdateStmt:
		p.formatUpdateStmt(stmt)
	case *core.DeleteStmt:
		p.formatDeleteStmt(stmt)
	case *core.ValuesStmt:
		p.formatValuesStmt(stmt)
	default:
		p.fail(fmt.Errorf("render: unsupported statement %T", s))
	}
}

// ---------- SELECT ----------

func (p *printer) formatSelectStmt(stmt *core.SelectStmt) {
	if ctes := stmt.With(); len(ctes) > 0 {
		p.write("WITH ")
		p.formatList(len(ctes), func(i int) {
			p.ident(ctes[i].Name)
			p.write(" AS (")
			p.stmt(ctes[i].Query.Stmt)
			p.write(")")
		}, ", ")
		p.space()
	}

	p.write("SELECT ")
	if stmt.Distinct() {
		p.write("DISTINCT ")
	}
	if sel := stmt.Selections(); len(sel) > 0 {
		p.formatList(len(sel), func(i int) {
			p.formatExpr(sel[i])
		}, ", ")
	} else {
		p.write("*")
	}

	if from := stmt.From(); len(from) > 0 {
		p.write(" FROM ")
		p.formatFrom(from)
	}
	if where := stmt.Where(); len(where) > 0 {
		p.write(" WHERE ")
		p.formatPredicates(where)
	}
	if group := stmt.GroupBy(); len(group) > 0 {
		p.write(" GROUP BY ")
		p.formatList(len(group), func(i int) {
			p.formatExpr(group[i])
		}, ", ")
	}
	if having := stmt.Having(); len(having) > 0 {
		p.write(" HAVING ")
		p.formatPredicates(having)
	}
	p.formatOrderBy(stmt.OrderBy())
	p.formatLimit(stmt.Limit())

	switch stmt.Lock() {
	case core.LockForUpdate:
		p.lock("FOR UPDATE")
	case core.LockForShare:
		p.lock("FOR SHARE")
	}
}

func (p *printer) lock(clause string) {
	if !p.dialect.Features.RowLocking {
		p.unsupported(clause)
		return
	}
	p.space()
	p.write(clause)
}

func (p *printer) formatFrom(blocks []core.TableBlock) {
	for i, b := range blocks {
		switch {
		case i == 0:
		case b.Kind == core.JoinNone:
			p.write(", ")
		default:
			if !p.dialect.SupportsJoin(b.Kind) {
				p.unsupported(b.Kind.String())
				return
			}
			p.space()
			p.write(b.Kind.String())
			p.space()
		}
		p.formatTableBlock(b)
		if len(b.On) > 0 {
			p.write(" ON ")
			p.formatPredicates(b.On)
		}
	}
}

func (p *printer) formatTableBlock(b core.TableBlock) {
	switch {
	case b.CTE != "":
		p.ident(b.CTE)
		if b.Alias != "" {
			p.write(" AS ")
			p.ident(b.Alias)
		}
	case b.Sub != nil:
		p.formatDerivedTable(b.Sub, b.Alias)
	case b.Table != nil:
		p.formatTableName(b.Table)
		if b.Alias != "" && b.Alias != b.Table.Name {
			p.write(" AS ")
			p.ident(b.Alias)
		}
	}
}

func (p *printer) formatTableName(t *core.Table) {
	if t.Schema != "" {
		p.ident(t.Schema)
		p.write(".")
	}
	p.ident(t.Name)
}

// formatDerivedTable prints (sub-query) AS alias. VALUES lists also carry
// their column names.
func (p *printer) formatDerivedTable(sq *core.SubQuery, alias string) {
	if alias == "" {
		alias = sq.Alias
	}
	p.write("(")
	p.stmt(sq.Stmt)
	p.write(") AS ")
	p.ident(alias)
	if v, ok := sq.Stmt.(*core.ValuesStmt); ok {
		if names := v.ColumnNames(); len(names) > 0 {
			p.write(" (")
			p.formatList(len(names), func(i int) {
				p.ident(names[i])
			}, ", ")
			p.write(")")
		}
	}
}

func (p *printer) formatOrderBy(items []core.SortItem) {
	if len(items) == 0 {
		return
	}
	p.write(" ORDER BY ")
	p.formatList(len(items), func(i int) {
		p.formatExpr(items[i].Expr)
		if items[i].Desc {
			p.write(" DESC")
		}
		switch items[i].Nulls {
		case core.NullsFirst:
			p.write(" NULLS FIRST")
		case core.NullsLast:
			p.write(" NULLS LAST")
		}
	}, ", ")
}

func (p *printer) formatLimit(l *core.Limit) {
	if l == nil {
		return
	}
	if p.dialect.Limits == core.LimitFetch {
		if l.Offset > 0 {
			p.write(" OFFSET " + strconv.FormatInt(l.Offset, 10) + " ROWS")
		}
		if l.HasRowCount {
			p.write(" FETCH NEXT " + strconv.FormatInt(l.RowCount, 10) + " ROWS ONLY")
		}
		return
	}
	if l.HasRowCount {
		p.write(" LIMIT " + strconv.FormatInt(l.RowCount, 10))
	}
	if l.Offset > 0 {
		p.write(" OFFSET " + strconv.FormatInt(l.Offset, 10))
	}
}

// ---------- INSERT ----------

func (p *printer) formatInsertStmt(stmt *core.InsertStmt) {
	p.write("INSERT INTO ")
	p.formatTableName(stmt.Table())
	if cols := stmt.Columns(); len(cols) > 0 {
		p.write(" (")
		p.formatList(len(cols), func(i int) {
			p.ident(cols[i].Name)
		}, ", ")
		p.write(")")
	}

	if q := stmt.Query(); q != nil {
		p.space()
		p.formatSelectStmt(q)
	} else {
		p.write(" VALUES ")
		p.formatRows(stmt.Rows())
	}

	if oc := stmt.OnConflict(); oc != nil {
		if !p.dialect.Features.OnConflict {
			p.unsupported("ON CONFLICT")
			return
		}
		p.write(" ON CONFLICT")
		if len(oc.Keys) > 0 {
			p.write(" (")
			p.formatList(len(oc.Keys), func(i int) {
				p.ident(oc.Keys[i].Name)
			}, ", ")
			p.write(")")
		}
		p.write(" DO NOTHING")
	}
	p.formatReturning(stmt.Returning())
}

func (p *printer) formatRows(rows [][]core.Expr) {
	p.formatList(len(rows), func(i int) {
		p.write("(")
		p.formatList(len(rows[i]), func(j int) {
			p.formatExpr(rows[i][j])
		}, ", ")
		p.write(")")
	}, ", ")
}

func (p *printer) formatReturning(fields []*core.Field) {
	if len(fields) == 0 {
		return
	}
	if !p.dialect.Features.Returning {
		p.unsupported("RETURNING")
		return
	}
	p.write(" RETURNING ")
	p.formatList(len(fields), func(i int) {
		p.ident(fields[i].Name)
	}, ", ")
}

// ---------- UPDATE / DELETE ----------

func (p *printer) formatTarget(t *core.Table, alias string) {
	p.formatTableName(t)
	if alias == "" || alias == t.Name {
		return
	}
	if !p.dialect.Features.UpdateAlias {
		p.unsupported("target table alias")
		return
	}
	p.write(" AS ")
	p.ident(alias)
}

// formatBounds prints ORDER BY and LIMIT on UPDATE and DELETE, which only
// some dialects accept.
func (p *printer) formatBounds(kind string, allowed bool, order []core.SortItem, l *core.Limit) {
	if len(order) == 0 && l == nil {
		return
	}
	if !allowed {
		p.unsupported(kind + " with ORDER BY/LIMIT")
		return
	}
	if l != nil && l.Offset > 0 {
		p.unsupported(kind + " with OFFSET")
		return
	}
	p.formatOrderBy(order)
	if l != nil && l.HasRowCount {
		p.write(" LIMIT " + strconv.FormatInt(l.RowCount, 10))
	}
}

func (p *printer) formatUpdateStmt(stmt *core.UpdateStmt) {
	p.write("UPDATE ")
	p.formatTarget(stmt.Table(), stmt.Alias())
	p.write(" SET ")
	set := stmt.Set()
	p.formatList(len(set), func(i int) {
		p.ident(set[i].Field.Name)
		p.write(" = ")
		p.formatExpr(set[i].Value)
	}, ", ")
	if where := stmt.Where(); len(where) > 0 {
		p.write(" WHERE ")
		p.formatPredicates(where)
	}
	p.formatBounds("UPDATE", p.dialect.Features.UpdateLimit, stmt.OrderBy(), stmt.Limit())
	p.formatReturning(stmt.Returning())
}

func (p *printer) formatDeleteStmt(stmt *core.DeleteStmt) {
	p.write("DELETE FROM ")
	p.formatTarget(stmt.Table(), stmt.Alias())
	if where := stmt.Where(); len(where) > 0 {
		p.write(" WHERE ")
		p.formatPredicates(where)
	}
	p.formatBounds("DELETE", p.dialect.Features.DeleteLimit, stmt.OrderBy(), stmt.Limit())
	p.formatReturning(stmt.Returning())
}

// ---------- VALUES ----------

func (p *printer) formatValuesStmt(stmt *core.ValuesStmt) {
	p.write("VALUES ")
	p.formatRows(stmt.Rows())
}
