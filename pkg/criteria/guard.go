package criteria

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// lifecycle is the one-way state of a builder.
type lifecycle int

const (
	building lifecycle = iota
	prepared
	cleared
)

// guard is the state machine shared by every builder: it owns the builder's
// context, its position on the session stack, its clause stage and its
// sticky error.
type guard struct {
	sess   *Session
	ctx    *Context
	kind   core.StmtKind
	nested bool
	state  lifecycle
	err    error
	stages stageTracker
}

func (g *guard) open(sess *Session, kind core.StmtKind, nested bool, owner any) {
	g.sess = sess
	g.kind = kind
	g.nested = nested
	g.ctx = NewContext(owner)
	g.stages = newStageTracker(kind)

	var err error
	if nested {
		err = sess.stack.Push(g.ctx)
	} else {
		err = sess.stack.SetRoot(g.ctx)
	}
	if err != nil {
		g.err = err
		sess.logger.Warn("statement not started", slog.String("stmt", kind.String()), slog.Any("error", err))
		return
	}
	sess.logger.Debug("context opened",
		slog.String("stmt", kind.String()),
		slog.Bool("nested", nested),
		slog.Int("depth", sess.stack.Depth()))
}

// Err returns the first error the builder recorded.
func (g *guard) Err() error { return g.err }

// Prepared reports whether the terminal call has succeeded.
func (g *guard) Prepared() bool { return g.state == prepared }

// mutable reports whether op may change the builder. Mutating a prepared or
// cleared builder records an error.
func (g *guard) mutable(op string) bool {
	switch g.state {
	case prepared:
		g.record(wrap(op, ErrAlreadyPrepared))
		return false
	case cleared:
		g.record(wrap(op, ErrCleared))
		return false
	}
	return g.err == nil
}

// enter checks that op may run and that clause c may follow the clauses
// already added.
func (g *guard) enter(op string, c clause) bool {
	if !g.mutable(op) {
		return false
	}
	if err := g.stages.advance(c); err != nil {
		g.fail(op, err)
		return false
	}
	return true
}

func (g *guard) record(err error) {
	if g.err == nil {
		g.err = err
	}
}

// fail records err and tears the statement tree down, so the next root
// statement on the session starts from an empty stack.
func (g *guard) fail(op string, err error) {
	if g.err != nil || err == nil {
		return
	}
	g.err = wrap(op, err)
	if g.state == building {
		g.teardown()
	}
}

// teardown discards the statement tree if this builder is still part of it.
func (g *guard) teardown() {
	if g.sess == nil || g.ctx == nil || !g.sess.stack.contains(g.ctx) {
		return
	}
	level := slog.LevelDebug
	if structural(g.err) {
		level = slog.LevelWarn
	}
	g.sess.logger.Log(context.Background(), level, "force-clearing context stack",
		slog.String("stmt", g.kind.String()),
		slog.Int("depth", g.sess.stack.Depth()),
		slog.Any("error", g.err))
	g.sess.stack.forceClear()
}

// readable checks that the builder's accessors may be used.
func (g *guard) readable(op string) error {
	switch g.state {
	case building:
		return wrap(op, ErrNotPrepared)
	case cleared:
		return wrap(op, ErrCleared)
	}
	return nil
}

// finalize runs the completeness check, ends the context and leaves the
// session stack, then moves the builder to prepared. Any failure abandons
// the statement.
func (g *guard) finalize(op string, check func() error) error {
	switch g.state {
	case prepared:
		return wrap(op, ErrAlreadyPrepared)
	case cleared:
		return wrap(op, ErrCleared)
	}
	if g.err == nil {
		if err := check(); err != nil {
			g.err = wrap(op, err)
		}
	}
	if g.err == nil {
		g.err = g.leave(op)
	}
	if g.err != nil {
		g.teardown()
		return g.err
	}
	g.state = prepared
	g.sess.logger.Debug("statement prepared",
		slog.String("stmt", g.kind.String()),
		slog.Bool("nested", g.nested),
		slog.Int("depth", g.sess.stack.Depth()))
	return nil
}

func (g *guard) leave(op string) error {
	stack := &g.sess.stack
	var err error
	if g.nested {
		err = stack.checkPop(g.ctx)
	} else {
		err = stack.checkClear(g.ctx)
	}
	if err != nil {
		return wrap(op, err)
	}
	if err := g.ctx.End(); err != nil {
		return wrap(op, err)
	}
	if g.nested {
		return stack.Pop(g.ctx)
	}
	return stack.ClearRoot(g.ctx)
}

// release moves a prepared builder to cleared.
func (g *guard) release(op string) error {
	switch g.state {
	case building:
		return wrap(op, ErrNotPrepared)
	case cleared:
		return wrap(op, ErrCleared)
	}
	g.state = cleared
	g.ctx = nil
	return nil
}

// field qualifies f through alias in the builder's context.
func (g *guard) field(alias string, f *core.Field) *core.QualifiedField {
	const op = "field"
	if !g.mutable(op) {
		return &core.QualifiedField{Alias: alias, Field: f}
	}
	qf, err := g.ctx.QualifiedField(alias, f)
	if err != nil {
		g.fail(op, err)
		return &core.QualifiedField{Alias: alias, Field: f}
	}
	return qf
}

// ref returns a derived column reference. An alias the builder's context
// does not know is looked up in the enclosing statements before a forward
// placeholder is created, so a nested query may correlate with a derived
// table of its parent.
func (g *guard) ref(alias, column string, expect []core.TypeKind) *core.DerivedField {
	const op = "ref"
	if !g.mutable(op) {
		return core.NewDerivedField(alias, column, core.KindUnknown)
	}
	ctx := g.ctx
	if g.nested && !ctx.scopes(alias, column) {
		if outer := g.sess.stack.enclosing(ctx, alias); outer != nil {
			ctx = outer
		}
	}
	d, err := ctx.Ref(alias, column, expect...)
	if err != nil {
		g.fail(op, err)
		return core.NewDerivedField(alias, column, core.KindUnknown)
	}
	return d
}

// adopt records the error of a nested builder consumed by this one.
func (g *guard) adopt(op string, err error) bool {
	if err == nil {
		return true
	}
	g.fail(op, err)
	return false
}
