package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// single returns the only key and value of a one-entry mapping.
func single(n *yaml.Node) (string, *yaml.Node, bool) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, false
	}
	return n.Content[0].Value, n.Content[1], true
}

// entries returns the values of a mapping by key.
func entries(n *yaml.Node) map[string]*yaml.Node {
	m := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		m[n.Content[i].Value] = n.Content[i+1]
	}
	return m
}

func badOperand(n *yaml.Node, format string, args ...any) error {
	return atLine(n.Line, fmt.Errorf("%w: "+format, append([]any{ErrBadOperand}, args...)...))
}

func badPredicate(n *yaml.Node, format string, args ...any) error {
	return atLine(n.Line, fmt.Errorf("%w: "+format, append([]any{ErrBadPredicate}, args...)...))
}

// operand compiles a value expression. A nil scope only accepts literals,
// parameters and raw SQL.
func (c *stmtCompiler) operand(s *scope, n *yaml.Node) (core.Expr, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return c.operand(s, n.Alias)
	case yaml.ScalarNode:
		return c.scalar(s, n)
	case yaml.MappingNode:
		return c.mapping(s, n)
	}
	return nil, badOperand(n, "lists are only allowed as IN values")
}

func (c *stmtCompiler) scalar(s *scope, n *yaml.Node) (core.Expr, error) {
	switch n.Tag {
	case "!!null":
		return core.Null(), nil
	case "!!str":
		if s == nil {
			return nil, badOperand(n, "column %q cannot be referenced here; use {param: ...}", n.Value)
		}
		e, err := s.column(n.Value)
		return e, atLine(n.Line, err)
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, badOperand(n, "%v", err)
	}
	return core.P(v), nil
}

var aggregates = map[string]func(core.Expr) *core.FuncCall{
	"count":          core.Count,
	"count_distinct": core.CountDistinct,
	"sum":            core.Sum,
	"avg":            core.Avg,
	"min":            core.Min,
	"max":            core.Max,
}

var arithmetic = map[string]func(core.Expr, any) *core.BinaryExpr{
	"add": core.Add,
	"sub": core.Sub,
	"mul": core.Mul,
	"div": core.Div,
}

func (c *stmtCompiler) mapping(s *scope, n *yaml.Node) (core.Expr, error) {
	key, val, ok := single(n)
	if !ok {
		if m := entries(n); m["func"] != nil {
			return c.call(s, n, m)
		}
		return nil, badOperand(n, "expected a mapping with one key")
	}

	switch key {
	case "param":
		var v any
		if err := val.Decode(&v); err != nil {
			return nil, badOperand(val, "%v", err)
		}
		return core.P(v), nil
	case "raw":
		if val.Kind != yaml.ScalarNode || val.Value == "" {
			return nil, badOperand(val, "raw needs a SQL string")
		}
		return core.Raw(val.Value), nil
	case "ref":
		alias, col, found := strings.Cut(val.Value, ".")
		if val.Kind != yaml.ScalarNode || !found || alias == "" || col == "" {
			return nil, badOperand(val, "ref needs alias.column")
		}
		if s == nil {
			return nil, badOperand(val, "ref cannot be used here")
		}
		e, err := s.ref(alias, col)
		return e, atLine(val.Line, err)
	case "select":
		if s == nil {
			return nil, badOperand(val, "sub-queries cannot be used here")
		}
		stmt, err := c.subquery(s, val)
		if err != nil {
			return nil, err
		}
		return core.Scalar(stmt), nil
	case "func":
		return c.call(s, n, entries(n))
	}

	if agg, ok := aggregates[key]; ok {
		if key == "count" && val.Kind == yaml.ScalarNode && val.Value == "*" {
			return core.CountStar(), nil
		}
		arg, err := c.operand(s, val)
		if err != nil {
			return nil, err
		}
		return agg(arg), nil
	}
	if op, ok := arithmetic[key]; ok {
		args, err := c.pair(s, val, key)
		if err != nil {
			return nil, err
		}
		return op(args[0], args[1]), nil
	}
	return nil, badOperand(n, "unknown operand %q", key)
}

// call compiles {func: name, args: [...], distinct: bool}.
func (c *stmtCompiler) call(s *scope, n *yaml.Node, m map[string]*yaml.Node) (core.Expr, error) {
	name := m["func"]
	if name == nil || name.Kind != yaml.ScalarNode || name.Value == "" {
		return nil, badOperand(n, "func needs a name")
	}
	for k := range m {
		if k != "func" && k != "args" && k != "distinct" {
			return nil, badOperand(n, "unknown func key %q", k)
		}
	}
	var args []any
	if a := m["args"]; a != nil {
		if a.Kind != yaml.SequenceNode {
			return nil, badOperand(a, "args must be a list")
		}
		for _, item := range a.Content {
			e, err := c.operand(s, item)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
	}
	fn := core.Func(name.Value, args...)
	if d := m["distinct"]; d != nil {
		if err := d.Decode(&fn.Distinct); err != nil {
			return nil, badOperand(d, "%v", err)
		}
	}
	return fn, nil
}

func (c *stmtCompiler) subquery(s *scope, n *yaml.Node) (*core.SelectStmt, error) {
	var sel SelectNode
	if err := n.Decode(&sel); err != nil {
		return nil, badOperand(n, "%v", err)
	}
	b, err := c.selectStmt(&sel, s, true)
	if err != nil {
		return nil, atLine(n.Line, err)
	}
	return b.AsSelect()
}

func (c *stmtCompiler) list(s *scope, n *yaml.Node, want int, op string) ([]core.Expr, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != want {
		return nil, badPredicate(n, "%s needs %d operands", op, want)
	}
	out := make([]core.Expr, want)
	for i, item := range n.Content {
		e, err := c.operand(s, item)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (c *stmtCompiler) pair(s *scope, n *yaml.Node, op string) ([]core.Expr, error) {
	return c.list(s, n, 2, op)
}

func (c *stmtCompiler) operands(s *scope, nodes []yaml.Node) ([]core.Expr, error) {
	out := make([]core.Expr, 0, len(nodes))
	for i := range nodes {
		e, err := c.operand(s, &nodes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// ---------- select items and sort keys ----------

// columns compiles select items. An item is an operand, optionally wrapped
// as {expr: operand, as: label} or written as an operand mapping with an
// extra as key. Labels become visible to ORDER BY and GROUP BY.
func (c *stmtCompiler) columns(s *scope, nodes []yaml.Node) ([]core.Expr, error) {
	items := make([]core.Expr, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		expr, label := n, ""
		if n.Kind == yaml.MappingNode {
			m := entries(n)
			if as := m["as"]; as != nil {
				label = as.Value
			}
			switch {
			case m["expr"] != nil:
				expr = m["expr"]
			case label != "":
				expr = withoutKey(n, "as")
			}
		}
		e, err := c.operand(s, expr)
		if err != nil {
			return nil, err
		}
		if label != "" {
			e = core.As(e, label)
			s.labels[label] = true
		}
		items = append(items, e)
	}
	return items, nil
}

func withoutKey(n *yaml.Node, key string) *yaml.Node {
	out := *n
	out.Content = nil
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != key {
			out.Content = append(out.Content, n.Content[i], n.Content[i+1])
		}
	}
	return &out
}

// orderBy compiles sort keys: an operand, or {expr, desc, nulls}.
func (c *stmtCompiler) orderBy(s *scope, nodes []yaml.Node) ([]core.SortItem, error) {
	items := make([]core.SortItem, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		m := map[string]*yaml.Node{}
		if n.Kind == yaml.MappingNode {
			m = entries(n)
		}
		if m["expr"] == nil {
			e, err := c.operand(s, n)
			if err != nil {
				return nil, err
			}
			items = append(items, core.Asc(e))
			continue
		}

		e, err := c.operand(s, m["expr"])
		if err != nil {
			return nil, err
		}
		item := core.Asc(e)
		if d := m["desc"]; d != nil {
			if err := d.Decode(&item.Desc); err != nil {
				return nil, badOperand(d, "desc: %v", err)
			}
		}
		if nulls := m["nulls"]; nulls != nil {
			switch strings.ToLower(nulls.Value) {
			case "first":
				item = item.NullsFirst()
			case "last":
				item = item.NullsLast()
			default:
				return nil, badOperand(nulls, "nulls must be first or last")
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// ---------- predicates ----------

var comparisons = map[string]func(core.Expr, any) *core.BinaryExpr{
	"eq":       core.Eq,
	"ne":       core.NotEq,
	"lt":       core.Lt,
	"le":       core.Le,
	"gt":       core.Gt,
	"ge":       core.Ge,
	"like":     core.Like,
	"not_like": core.NotLike,
}

func (c *stmtCompiler) predicates(s *scope, nodes []yaml.Node) ([]core.Expr, error) {
	out := make([]core.Expr, 0, len(nodes))
	for i := range nodes {
		p, err := c.predicate(s, &nodes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// where compiles WHERE predicates and rejects aggregate calls in them.
func (c *stmtCompiler) where(s *scope, nodes []yaml.Node) ([]core.Expr, error) {
	preds, err := c.predicates(s, nodes)
	if err != nil {
		return nil, err
	}
	for i, p := range preds {
		if name, ok := c.findAggregate(p); ok {
			return nil, atLine(nodes[i].Line, fmt.Errorf("%w: %s", ErrAggregateInWhere, name))
		}
	}
	return preds, nil
}

func (c *stmtCompiler) predicate(s *scope, n *yaml.Node) (core.Expr, error) {
	if n.Kind == yaml.AliasNode {
		return c.predicate(s, n.Alias)
	}
	key, val, ok := single(n)
	if !ok {
		return nil, badPredicate(n, "expected a mapping with one operator key")
	}

	if cmp, ok := comparisons[key]; ok {
		args, err := c.pair(s, val, key)
		if err != nil {
			return nil, err
		}
		return cmp(args[0], args[1]), nil
	}

	switch key {
	case "in", "not_in":
		return c.in(s, val, key == "not_in")
	case "between", "not_between":
		args, err := c.list(s, val, 3, key)
		if err != nil {
			return nil, err
		}
		if key == "between" {
			return core.Between(args[0], args[1], args[2]), nil
		}
		return core.NotBetween(args[0], args[1], args[2]), nil
	case "is_null", "is_not_null":
		e, err := c.operand(s, val)
		if err != nil {
			return nil, err
		}
		if key == "is_null" {
			return core.IsNull(e), nil
		}
		return core.IsNotNull(e), nil
	case "and", "or":
		if val.Kind != yaml.SequenceNode || len(val.Content) == 0 {
			return nil, badPredicate(val, "%s needs a list of predicates", key)
		}
		terms := make([]core.Expr, 0, len(val.Content))
		for _, item := range val.Content {
			p, err := c.predicate(s, item)
			if err != nil {
				return nil, err
			}
			terms = append(terms, p)
		}
		if key == "and" {
			return core.And(terms...), nil
		}
		return core.Or(terms...), nil
	case "not":
		p, err := c.predicate(s, val)
		if err != nil {
			return nil, err
		}
		return core.Not(p), nil
	case "exists", "not_exists":
		stmt, err := c.subquery(s, val)
		if err != nil {
			return nil, err
		}
		if key == "exists" {
			return core.Exists(stmt), nil
		}
		return core.NotExists(stmt), nil
	case "raw":
		if val.Kind != yaml.ScalarNode || val.Value == "" {
			return nil, badPredicate(val, "raw needs a SQL string")
		}
		return core.Raw(val.Value), nil
	}
	return nil, badPredicate(n, "unknown operator %q", key)
}

// in compiles [operand, [values...]] or [operand, {select: ...}].
func (c *stmtCompiler) in(s *scope, n *yaml.Node, not bool) (core.Expr, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
		return nil, badPredicate(n, "in needs [operand, values]")
	}
	e, err := c.operand(s, n.Content[0])
	if err != nil {
		return nil, err
	}
	set := n.Content[1]
	if key, val, ok := single(set); ok && key == "select" {
		stmt, err := c.subquery(s, val)
		if err != nil {
			return nil, err
		}
		if not {
			return core.NotInSub(e, stmt), nil
		}
		return core.InSub(e, stmt), nil
	}
	if set.Kind != yaml.SequenceNode {
		return nil, badPredicate(set, "in values must be a list or {select: ...}")
	}
	vals := make([]any, 0, len(set.Content))
	for _, item := range set.Content {
		v, err := c.operand(s, item)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if not {
		return core.NotIn(e, vals...), nil
	}
	return core.In(e, vals...), nil
}

// findAggregate reports the first aggregate call in e. Sub-queries are not
// searched; they aggregate in their own scope.
func (c *stmtCompiler) findAggregate(e core.Expr) (string, bool) {
	walk := func(es ...core.Expr) (string, bool) {
		for _, x := range es {
			if name, ok := c.findAggregate(x); ok {
				return name, true
			}
		}
		return "", false
	}
	switch x := e.(type) {
	case *core.FuncCall:
		if c.isAggregate(x.Name) {
			return x.Name, true
		}
		return walk(x.Args...)
	case *core.AliasedExpr:
		return walk(x.Expr)
	case *core.BinaryExpr:
		return walk(x.Left, x.Right)
	case *core.LogicalExpr:
		return walk(x.Terms...)
	case *core.NotExpr:
		return walk(x.Expr)
	case *core.IsNullExpr:
		return walk(x.Expr)
	case *core.InExpr:
		return walk(append([]core.Expr{x.Expr}, x.Values...)...)
	case *core.BetweenExpr:
		return walk(x.Expr, x.Low, x.High)
	case *core.InSubExpr:
		return walk(x.Expr)
	}
	return "", false
}

func (c *stmtCompiler) isAggregate(name string) bool {
	if c.dialect != nil {
		return c.dialect.IsAggregate(name)
	}
	_, ok := aggregates[strings.ToLower(name)]
	return ok
}
