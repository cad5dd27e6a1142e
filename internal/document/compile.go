package document

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapcrit/pkg/core"
	"github.com/leapstack-labs/leapcrit/pkg/criteria"
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

// Catalog resolves table names. *meta.Catalog satisfies it.
type Catalog interface {
	Lookup(name string) (*core.Table, bool)
}

// Compiled is a finalized statement from a document.
type Compiled struct {
	Name string
	Line int
	Stmt core.Stmt
}

// Compiler turns documents into statements against one catalog and dialect.
// The dialect decides which function names are aggregates.
type Compiler struct {
	catalog Catalog
	dialect *dialect.Dialect
	logger  *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger handed to each statement session.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCompiler creates a compiler.
func NewCompiler(cat Catalog, d *dialect.Dialect, opts ...Option) *Compiler {
	c := &Compiler{
		catalog: cat,
		dialect: d,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles every statement in f. Statements that fail are reported
// together; the ones that compiled are still returned.
func (c *Compiler) Compile(f *File) ([]Compiled, error) {
	var (
		out  []Compiled
		errs []error
		seen = make(map[string]bool, len(f.Statements))
	)
	for i := range f.Statements {
		st := &f.Statements[i]
		name := st.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if seen[name] {
			errs = append(errs, &Error{Statement: name, Line: st.line, Err: errors.New("duplicate statement name")})
			continue
		}
		seen[name] = true

		stmt, err := c.CompileStatement(st)
		if err != nil {
			errs = append(errs, &Error{Statement: name, Line: st.line, Err: err})
			continue
		}
		out = append(out, Compiled{Name: name, Line: st.line, Stmt: stmt})
	}
	return out, errors.Join(errs...)
}

// CompileStatement compiles one statement in a fresh session.
func (c *Compiler) CompileStatement(st *Statement) (core.Stmt, error) {
	bodies := 0
	for _, set := range []bool{st.Select != nil, st.Insert != nil, st.Update != nil, st.Delete != nil, st.Values != nil} {
		if set {
			bodies++
		}
	}
	switch bodies {
	case 0:
		return nil, ErrNoBody
	case 1:
	default:
		return nil, ErrManyBodies
	}

	sc := &stmtCompiler{
		Compiler: c,
		sess:     criteria.NewSession(criteria.WithLogger(c.logger.With(slog.String("statement", st.Name)))),
	}
	switch {
	case st.Select != nil:
		b, err := sc.selectStmt(st.Select, nil, false)
		if err != nil {
			return nil, err
		}
		return b.AsSelect()
	case st.Insert != nil:
		return sc.insertStmt(st.Insert)
	case st.Update != nil:
		return sc.updateStmt(st.Update)
	case st.Delete != nil:
		return sc.deleteStmt(st.Delete)
	default:
		b, err := sc.valuesStmt(st.Values, false)
		if err != nil {
			return nil, err
		}
		return b.AsValues()
	}
}

// stmtCompiler holds the session of the statement being compiled.
type stmtCompiler struct {
	*Compiler
	sess *criteria.Session
}

func (c *stmtCompiler) table(name string) (*core.Table, error) {
	if name == "" {
		return nil, criteria.ErrMissingTable
	}
	t, ok := c.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return t, nil
}

func (c *stmtCompiler) fields(t *core.Table, names []string) ([]*core.Field, error) {
	fields := make([]*core.Field, 0, len(names))
	for _, n := range names {
		f, ok := t.Field(n)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no column %q", ErrUnknownColumn, t.QualifiedName(), n)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// ---------- SELECT ----------

func sourceAlias(src *SourceNode) string {
	switch {
	case src.As != "":
		return src.As
	case src.CTE != "":
		return src.CTE
	}
	return src.Table
}

func (src *SourceNode) check() error {
	n := 0
	for _, set := range []bool{src.Table != "", src.CTE != "", src.Select != nil, src.Values != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		return ErrBadSource
	}
	return nil
}

// declare registers the aliases of every source before any clause is
// compiled, so select items can name sources declared after them.
func (c *stmtCompiler) declare(s *scope, n *SelectNode) error {
	sources := make([]*SourceNode, 0, len(n.Joins)+1)
	if n.From != nil {
		sources = append(sources, n.From)
	}
	for i := range n.Joins {
		sources = append(sources, &n.Joins[i].SourceNode)
	}
	for _, src := range sources {
		if err := src.check(); err != nil {
			return err
		}
		alias := sourceAlias(src)
		if src.Table == "" {
			if alias == "" {
				return criteria.ErrMissingAlias
			}
			if err := s.addDerived(alias); err != nil {
				return err
			}
			continue
		}
		t, err := c.table(src.Table)
		if err != nil {
			return err
		}
		if err := s.addTable(alias, t); err != nil {
			return err
		}
	}
	return nil
}

func (c *stmtCompiler) selectStmt(n *SelectNode, parent *scope, nested bool) (*criteria.SelectBuilder, error) {
	var b *criteria.SelectBuilder
	if nested {
		b = c.sess.SubSelect()
	} else {
		b = c.sess.Select()
	}
	s := newScope(parent, b)
	if err := c.declare(s, n); err != nil {
		return nil, err
	}

	for _, cte := range n.With {
		if cte.Name == "" {
			return nil, fmt.Errorf("%w: common table expression without a name", ErrBadSource)
		}
		sub, err := c.derived(cte.Select, cte.Values, s)
		if err != nil {
			return nil, fmt.Errorf("with %s: %w", cte.Name, err)
		}
		b.With(cte.Name, sub)
	}

	if n.Distinct {
		b.Distinct()
	}
	items, err := c.columns(s, n.Columns)
	if err != nil {
		return nil, err
	}
	b.Select(items...)

	if n.From != nil {
		if err := c.source(b, s, n.From, core.JoinNone); err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
	}
	for i := range n.Joins {
		j := &n.Joins[i]
		kind, err := joinKind(j.Kind)
		if err != nil {
			return nil, err
		}
		if err := c.source(b, s, &j.SourceNode, kind); err != nil {
			return nil, fmt.Errorf("join %s: %w", sourceAlias(&j.SourceNode), err)
		}
		if len(j.On) > 0 {
			preds, err := c.predicates(s, j.On)
			if err != nil {
				return nil, err
			}
			b.On(preds...)
		}
	}

	if len(n.Where) > 0 {
		preds, err := c.where(s, n.Where)
		if err != nil {
			return nil, err
		}
		b.Where(preds...)
	}
	if len(n.GroupBy) > 0 {
		keys, err := c.operands(s, n.GroupBy)
		if err != nil {
			return nil, err
		}
		b.GroupBy(keys...)
	}
	if len(n.Having) > 0 {
		preds, err := c.predicates(s, n.Having)
		if err != nil {
			return nil, err
		}
		b.Having(preds...)
	}
	if len(n.OrderBy) > 0 {
		order, err := c.orderBy(s, n.OrderBy)
		if err != nil {
			return nil, err
		}
		b.OrderBy(order...)
	}
	if n.Limit != nil {
		b.Limit(*n.Limit)
	}
	if n.Offset != nil {
		b.Offset(*n.Offset)
	}
	switch strings.ToLower(n.Lock) {
	case "":
	case "update":
		b.ForUpdate()
	case "share":
		b.ForShare()
	default:
		return nil, fmt.Errorf("%w: unknown lock %q", ErrBadSource, n.Lock)
	}
	return b, b.Err()
}

// derived compiles a nested select or values body.
func (c *stmtCompiler) derived(sel *SelectNode, vals *ValuesNode, parent *scope) (criteria.Derived, error) {
	switch {
	case sel != nil && vals == nil:
		return c.selectStmt(sel, parent, true)
	case vals != nil && sel == nil:
		return c.valuesStmt(vals, true)
	}
	return nil, ErrBadSource
}

func (c *stmtCompiler) source(b *criteria.SelectBuilder, s *scope, src *SourceNode, kind core.JoinKind) error {
	alias := sourceAlias(src)
	switch {
	case src.Table != "":
		t := s.tables[alias]
		as := src.As
		switch kind {
		case core.JoinNone:
			b.From(t, as)
		case core.JoinInner:
			b.Join(t, as)
		case core.JoinLeft:
			b.LeftJoin(t, as)
		case core.JoinRight:
			b.RightJoin(t, as)
		case core.JoinFull:
			b.FullJoin(t, as)
		case core.JoinCross:
			b.CrossJoin(t, as)
		case core.JoinStraight:
			b.StraightJoin(t, as)
		}
	case src.CTE != "":
		if kind == core.JoinNone {
			b.FromCTE(src.CTE, src.As)
		} else {
			b.JoinCTE(kind, src.CTE, src.As)
		}
	default:
		sub, err := c.derived(src.Select, src.Values, s)
		if err != nil {
			return err
		}
		if kind == core.JoinNone {
			b.FromSub(sub, alias)
		} else {
			b.JoinSub(kind, sub, alias)
		}
	}
	return nil
}

func joinKind(s string) (core.JoinKind, error) {
	switch strings.ToLower(s) {
	case "", "inner":
		return core.JoinInner, nil
	case "left":
		return core.JoinLeft, nil
	case "right":
		return core.JoinRight, nil
	case "full":
		return core.JoinFull, nil
	case "cross":
		return core.JoinCross, nil
	case "straight":
		return core.JoinStraight, nil
	}
	return core.JoinNone, fmt.Errorf("%w: unknown join kind %q", ErrBadSource, s)
}

// ---------- VALUES ----------

func (c *stmtCompiler) valuesStmt(n *ValuesNode, nested bool) (*criteria.ValuesBuilder, error) {
	var b *criteria.ValuesBuilder
	if nested {
		b = c.sess.SubValues()
	} else {
		b = c.sess.Values()
	}
	if len(n.Columns) > 0 {
		b.ColumnNames(n.Columns...)
	}
	for _, row := range n.Rows {
		vals, err := c.row(row)
		if err != nil {
			return nil, err
		}
		b.Row(vals...)
	}
	return b, b.Err()
}

func (c *stmtCompiler) row(nodes []yaml.Node) ([]any, error) {
	vals := make([]any, len(nodes))
	for i := range nodes {
		e, err := c.operand(nil, &nodes[i])
		if err != nil {
			return nil, err
		}
		vals[i] = e
	}
	return vals, nil
}

// ---------- INSERT ----------

func (c *stmtCompiler) insertStmt(n *InsertNode) (*core.InsertStmt, error) {
	t, err := c.table(n.Table)
	if err != nil {
		return nil, err
	}
	b := c.sess.Insert(t)
	if n.Columns != nil {
		cols, err := c.fields(t, n.Columns)
		if err != nil {
			return nil, err
		}
		b.Columns(cols...)
	}
	for _, row := range n.Rows {
		vals, err := c.row(row)
		if err != nil {
			return nil, err
		}
		b.Values(vals...)
	}
	if n.Select != nil {
		src, err := c.selectStmt(n.Select, nil, true)
		if err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		b.FromSelect(src)
	}
	if n.OnConflict != nil {
		keys, err := c.fields(t, n.OnConflict.Keys)
		if err != nil {
			return nil, err
		}
		b.OnConflictDoNothing(keys...)
	}
	if len(n.Returning) > 0 {
		ret, err := c.fields(t, n.Returning)
		if err != nil {
			return nil, err
		}
		b.Returning(ret...)
	}
	return b.AsInsert()
}

// ---------- UPDATE / DELETE ----------

func (c *stmtCompiler) targetScope(b qualifier, t *core.Table, alias string) *scope {
	s := newScope(nil, b)
	name := alias
	if name == "" {
		name = t.Name
	}
	_ = s.addTable(name, t)
	return s
}

func (c *stmtCompiler) updateStmt(n *UpdateNode) (*core.UpdateStmt, error) {
	t, err := c.table(n.Table)
	if err != nil {
		return nil, err
	}
	b := c.sess.Update(t, n.As)
	s := c.targetScope(b, t, n.As)

	if n.Set.Kind != 0 {
		if n.Set.Kind != yaml.MappingNode {
			return nil, atLine(n.Set.Line, fmt.Errorf("%w: set must be a mapping of column to value", ErrBadOperand))
		}
		for i := 0; i+1 < len(n.Set.Content); i += 2 {
			key, val := n.Set.Content[i], n.Set.Content[i+1]
			f, ok := t.Field(key.Value)
			if !ok {
				return nil, atLine(key.Line, fmt.Errorf("%w: %s has no column %q", ErrUnknownColumn, t.QualifiedName(), key.Value))
			}
			e, err := c.operand(s, val)
			if err != nil {
				return nil, err
			}
			b.Set(f, e)
		}
	}
	if len(n.Where) > 0 {
		preds, err := c.where(s, n.Where)
		if err != nil {
			return nil, err
		}
		b.Where(preds...)
	}
	if len(n.OrderBy) > 0 {
		order, err := c.orderBy(s, n.OrderBy)
		if err != nil {
			return nil, err
		}
		b.OrderBy(order...)
	}
	if n.Limit != nil {
		b.Limit(*n.Limit)
	}
	if len(n.Returning) > 0 {
		ret, err := c.fields(t, n.Returning)
		if err != nil {
			return nil, err
		}
		b.Returning(ret...)
	}
	if n.Migration {
		b.Migration()
	}
	return b.AsUpdate()
}

func (c *stmtCompiler) deleteStmt(n *DeleteNode) (*core.DeleteStmt, error) {
	t, err := c.table(n.Table)
	if err != nil {
		return nil, err
	}
	b := c.sess.Delete(t, n.As)
	s := c.targetScope(b, t, n.As)

	if len(n.Where) > 0 {
		preds, err := c.where(s, n.Where)
		if err != nil {
			return nil, err
		}
		b.Where(preds...)
	}
	if len(n.OrderBy) > 0 {
		order, err := c.orderBy(s, n.OrderBy)
		if err != nil {
			return nil, err
		}
		b.OrderBy(order...)
	}
	if n.Limit != nil {
		b.Limit(*n.Limit)
	}
	if len(n.Returning) > 0 {
		ret, err := c.fields(t, n.Returning)
		if err != nil {
			return nil, err
		}
		b.Returning(ret...)
	}
	if n.Migration {
		b.Migration()
	}
	return b.AsDelete()
}
