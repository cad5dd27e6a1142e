package document

import (
	"errors"
	"fmt"
)

// Validation errors for document structure.
var (
	ErrNoBody           = errors.New("statement has no body")
	ErrManyBodies       = errors.New("statement has more than one body")
	ErrUnknownTable     = errors.New("unknown table")
	ErrUnknownColumn    = errors.New("unknown column")
	ErrUnknownAlias     = errors.New("unknown alias")
	ErrAmbiguousColumn  = errors.New("ambiguous column")
	ErrBadOperand       = errors.New("invalid operand")
	ErrBadPredicate     = errors.New("invalid predicate")
	ErrBadSource        = errors.New("source needs exactly one of table, cte, select or values")
	ErrAggregateInWhere = errors.New("aggregate function in WHERE")
)

// Error locates a compile failure in the document.
type Error struct {
	Statement string
	Line      int
	Err       error
}

func (e *Error) Error() string {
	switch {
	case e.Statement != "" && e.Line > 0:
		return fmt.Sprintf("statement %s (line %d): %v", e.Statement, e.Line, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	case e.Statement != "":
		return fmt.Sprintf("statement %s: %v", e.Statement, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// lineError attaches the line of the offending YAML node.
type lineError struct {
	line int
	err  error
}

func (e *lineError) Error() string { return fmt.Sprintf("line %d: %v", e.line, e.err) }

func (e *lineError) Unwrap() error { return e.err }

func atLine(line int, err error) error {
	if err == nil || line <= 0 {
		return err
	}
	var le *lineError
	if errors.As(err, &le) {
		return err
	}
	return &lineError{line: line, err: err}
}
