package criteria

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// Kind classifies a builder failure.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate in this package.
	KindUnknown Kind = iota
	// KindSequencing covers API misuse: mutating after finalize, reading
	// before finalize, finalizing twice, out-of-order contexts or clauses.
	KindSequencing
	// KindReferential covers alias bookkeeping failures and unresolved
	// forward references.
	KindReferential
	// KindCompleteness covers required clauses missing at finalize time.
	KindCompleteness
	// KindValidation covers rejected values from direct and conditional clauses.
	KindValidation
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSequencing:
		return "sequencing"
	case KindReferential:
		return "referential"
	case KindCompleteness:
		return "completeness"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Sequencing errors.
var (
	ErrAlreadyPrepared = errors.New("statement already prepared")
	ErrNotPrepared     = errors.New("statement not prepared")
	ErrCleared         = errors.New("statement cleared")
	ErrNoRootContext   = errors.New("no root context on the session stack")
	ErrStackInUse      = errors.New("session stack already holds a statement")
	ErrNoContext       = errors.New("session stack is empty")
	ErrDanglingOn      = errors.New("ON without a preceding join")
	ErrJoinWithoutFrom = errors.New("JOIN without a FROM source")
	ErrNoWhere         = errors.New("OR without a preceding WHERE")
)

// Completeness errors.
var (
	ErrMissingWhere       = errors.New("missing WHERE clause")
	ErrMissingSet         = errors.New("missing SET clause")
	ErrMissingTable       = errors.New("missing target table")
	ErrMissingValues      = errors.New("missing VALUES rows or SELECT source")
	ErrMissingSelection   = errors.New("nothing selected and no FROM clause")
	ErrMissingAlias       = errors.New("derived table requires an alias")
	ErrEmptyColumnList    = errors.New("explicit column list is empty")
	ErrEmptyDynamicClause = errors.New("required dynamic clause added nothing")
)

// Validation errors.
var (
	ErrNilPredicate      = errors.New("predicate is nil")
	ErrNilExpr           = errors.New("expression is nil")
	ErrNegativeBound     = errors.New("LIMIT and OFFSET must not be negative")
	ErrNullNotAllowed    = errors.New("NULL not allowed")
	ErrFieldNotUpdatable = errors.New("field is not updatable")
	ErrConflictingSource = errors.New("INSERT cannot combine VALUES rows with a SELECT source")
	ErrEmptyRow          = errors.New("row has no values")
)

// Error wraps every failure reported by a builder, a Context or the stack.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return "criteria: " + e.Err.Error()
	}
	return fmt.Sprintf("criteria: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the classification of err, or KindUnknown.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// wrap classifies err and attaches op. Errors that are already wrapped keep
// their original operation.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Kind: classify(err), Op: op, Err: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, ErrAlreadyPrepared), errors.Is(err, ErrNotPrepared), errors.Is(err, ErrCleared),
		errors.Is(err, ErrNoRootContext), errors.Is(err, ErrStackInUse), errors.Is(err, ErrNoContext),
		errors.Is(err, ErrDanglingOn), errors.Is(err, ErrJoinWithoutFrom), errors.Is(err, ErrNoWhere):
		return KindSequencing
	case errors.Is(err, ErrMissingWhere), errors.Is(err, ErrMissingSet), errors.Is(err, ErrMissingTable),
		errors.Is(err, ErrMissingValues), errors.Is(err, ErrMissingSelection), errors.Is(err, ErrEmptyColumnList),
		errors.Is(err, ErrEmptyDynamicClause), errors.Is(err, ErrMissingAlias):
		return KindCompleteness
	case errors.Is(err, ErrNilPredicate), errors.Is(err, ErrNilExpr), errors.Is(err, ErrNegativeBound),
		errors.Is(err, ErrNullNotAllowed), errors.Is(err, ErrFieldNotUpdatable), errors.Is(err, ErrConflictingSource),
		errors.Is(err, ErrEmptyRow):
		return KindValidation
	}

	var (
		stackErr   *StackMismatchError
		pendingErr *PendingSubContextError
		orderErr   *ClauseOrderError
		onErr      *MissingOnClauseError
		dupErr     *DuplicateAliasError
		aliasErr   *AliasConflictError
		unresErr   *UnresolvedReferenceError
		unknownErr *UnknownDerivedFieldError
		countErr   *ValueCountError
		typeErr    *TypeMismatchError
	)
	switch {
	case errors.As(err, &stackErr), errors.As(err, &pendingErr), errors.As(err, &orderErr):
		return KindSequencing
	case errors.As(err, &onErr):
		return KindCompleteness
	case errors.As(err, &dupErr), errors.As(err, &aliasErr), errors.As(err, &unresErr), errors.As(err, &unknownErr):
		return KindReferential
	case errors.As(err, &countErr), errors.As(err, &typeErr):
		return KindValidation
	}
	return KindUnknown
}

// structural reports whether err means the session stack itself is out of
// step with the builders, rather than one builder holding a bad clause.
func structural(err error) bool {
	switch KindOf(err) {
	case KindReferential:
		return true
	case KindSequencing:
		var stackErr *StackMismatchError
		var pendingErr *PendingSubContextError
		return errors.As(err, &stackErr) || errors.As(err, &pendingErr)
	}
	return false
}

// StackMismatchError is returned when a context is popped or cleared that is
// not the one expected at that stack position.
type StackMismatchError struct {
	Op    string // "pop" or "clear"
	Depth int
}

func (e *StackMismatchError) Error() string {
	return fmt.Sprintf("%s: context is not the top of the stack (depth %d)", e.Op, e.Depth)
}

// PendingSubContextError is returned when a root statement finalizes while
// nested sub-query contexts are still open.
type PendingSubContextError struct {
	Depth int
}

func (e *PendingSubContextError) Error() string {
	return fmt.Sprintf("%d nested context(s) still open", e.Depth-1)
}

// DuplicateAliasError is returned when a sub-query alias is bound twice to
// different sub-query instances.
type DuplicateAliasError struct {
	Alias string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("sub-query alias %q already registered", e.Alias)
}

// AliasConflictError is returned when one alias is used for incompatible
// sources or columns.
type AliasConflictError struct {
	Alias  string
	Column string
	Reason string
}

func (e *AliasConflictError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("alias %q %s", e.Alias, e.Reason)
	}
	return fmt.Sprintf("alias %q column %q %s", e.Alias, e.Column, e.Reason)
}

// UnresolvedReferenceError lists every forward reference that was never
// bound to a sub-query column.
type UnresolvedReferenceError struct {
	Refs []string
}

func (e *UnresolvedReferenceError) Error() string {
	return "unresolved derived column reference(s): " + strings.Join(e.Refs, ", ")
}

// UnknownDerivedFieldError is returned when a registered sub-query does not
// expose the referenced column.
type UnknownDerivedFieldError struct {
	Alias  string
	Column string
}

func (e *UnknownDerivedFieldError) Error() string {
	return fmt.Sprintf("sub-query %q has no column %q", e.Alias, e.Column)
}

// MissingOnClauseError is returned when a join that needs ON predicates is
// closed without any.
type MissingOnClauseError struct {
	Alias string
	Join  core.JoinKind
}

func (e *MissingOnClauseError) Error() string {
	return fmt.Sprintf("%s %q has no ON clause", e.Join, e.Alias)
}

// ClauseOrderError is returned when a clause is added after a clause that
// must follow it.
type ClauseOrderError struct {
	Stmt   core.StmtKind
	Clause string
	After  string
}

func (e *ClauseOrderError) Error() string {
	return fmt.Sprintf("%s: %s cannot follow %s", e.Stmt, e.Clause, e.After)
}

// ValueCountError is returned when a row has the wrong number of values.
type ValueCountError struct {
	Want int
	Got  int
}

func (e *ValueCountError) Error() string {
	return fmt.Sprintf("expected %d value(s), got %d", e.Want, e.Got)
}

// TypeMismatchError is returned when a value or reference does not fit the
// column it is bound to.
type TypeMismatchError struct {
	Column string
	Want   core.TypeKind
	Got    core.TypeKind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %s: expected %s, got %s", e.Column, e.Want, e.Got)
}
