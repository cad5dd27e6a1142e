// Package criteria builds SQL statements through fluent, validated builders.
//
// A Session owns the context stack of the statement tree being built. Root
// builders (Select, Insert, Update, Delete, Values) start a new tree; nested
// builders (SubSelect, SubValues) push a child context that is popped when
// the nested builder finalizes. Each terminal call (AsSelect, AsInsert, ...)
// moves its builder from Building to Prepared and returns an immutable
// statement from pkg/core.
//
// Builders keep the first error they hit and ignore later calls; the error
// is returned by the terminal call and by Err.
package criteria

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// Session holds the build state for one goroutine. It replaces ambient
// per-thread storage: every builder is created from, and reports to, an
// explicit Session. A Session is not safe for concurrent use.
type Session struct {
	id     uuid.UUID
	logger *slog.Logger
	stack  Stack
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithID sets the session identifier used in log records.
func WithID(id uuid.UUID) Option {
	return func(s *Session) { s.id = id }
}

// NewSession creates an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:     uuid.New(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("session", s.id.String()))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id.String() }

// Depth returns the number of open contexts.
func (s *Session) Depth() int { return s.stack.Depth() }

// Current returns the innermost open context.
func (s *Session) Current() (*Context, error) { return s.stack.Peek() }

// Reset discards any statement tree in progress.
func (s *Session) Reset() {
	if s.stack.Depth() > 0 {
		s.logger.Warn("discarding open statement tree", slog.Int("depth", s.stack.Depth()))
	}
	s.stack.forceClear()
}

// Select starts a root SELECT.
func (s *Session) Select(items ...core.Expr) *SelectBuilder {
	return newSelect(s, false).Select(items...)
}

// SubSelect starts a nested SELECT inside the statement currently being built.
func (s *Session) SubSelect(items ...core.Expr) *SelectBuilder {
	return newSelect(s, true).Select(items...)
}

// Insert starts a root INSERT into t.
func (s *Session) Insert(t *core.Table) *InsertBuilder {
	return newInsert(s, t)
}

// Update starts a root UPDATE of t. An empty alias leaves the table unaliased.
func (s *Session) Update(t *core.Table, alias string) *UpdateBuilder {
	return newUpdate(s, t, alias)
}

// Delete starts a root DELETE from t. An empty alias leaves the table unaliased.
func (s *Session) Delete(t *core.Table, alias string) *DeleteBuilder {
	return newDelete(s, t, alias)
}

// Values starts a root VALUES list.
func (s *Session) Values() *ValuesBuilder {
	return newValues(s, false)
}

// SubValues starts a nested VALUES list, typically used as a derived table.
func (s *Session) SubValues() *ValuesBuilder {
	return newValues(s, true)
}
