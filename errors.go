// Package gql2sql compiles a GraphQL query document into PostgreSQL
// statements that each return a single top-level selection as JSON.
package gql2sql

import (
	"errors"
	"fmt"
)

// Sentinel errors for the compiler's error taxonomy (spec §7). Each
// corresponds to one of the external-interface error names in spec.md §6.
// Callers should use errors.Is against these, or errors.As against
// *CompileError to recover the offending field path.
var (
	// ErrUnsupportedSelection is raised on a fragment spread, inline
	// fragment, or fragment definition — none of which this compiler
	// understands (spec Non-goals: no fragments).
	ErrUnsupportedSelection = errors.New("gql2sql: unsupported selection")

	// ErrUnsupportedOperation is raised when a context that requires a
	// query operation instead receives a mutation or subscription.
	ErrUnsupportedOperation = errors.New("gql2sql: unsupported operation")

	// ErrUnknownOperator is raised by the predicate builder on a filter
	// operator key other than eq/neq/lt/lte/gt/gte/like/ilike.
	ErrUnknownOperator = errors.New("gql2sql: unknown filter operator")

	// ErrUnknownDirectiveArg is raised when an @relation directive carries
	// an argument name other than table/field/references.
	ErrUnknownDirectiveArg = errors.New("gql2sql: unknown @relation argument")

	// ErrUnsupportedValueInScalarPosition is raised when a GraphQL list or
	// object value appears where only a scalar is accepted (filter operands,
	// first/after), when the filter/where or order argument or a column's
	// filter clause is not an object, and when an @relation directive
	// argument is given as an object or a variable.
	ErrUnsupportedValueInScalarPosition = errors.New("gql2sql: unsupported value in scalar position")

	// ErrMultiColumnFilter is raised when a filter/where object names more
	// than one column; see spec Open Question #1.
	ErrMultiColumnFilter = errors.New("gql2sql: multi-column filter unsupported")

	// ErrMalformedOrderDirection is raised when an order entry's value is
	// not the string or enum literal "ASC"/"DESC".
	ErrMalformedOrderDirection = errors.New("gql2sql: malformed order direction")

	// ErrUnsafeIdentifier is raised when an @relation directive argument
	// (table/field/references) would print as a SQL identifier containing
	// a double quote or control character. Directive arguments are string
	// literals, not schema-validated names, so they are the one place a
	// caller-controlled value reaches identifier position.
	ErrUnsafeIdentifier = errors.New("gql2sql: unsafe SQL identifier")
)

// CompileError wraps one of the sentinel errors above with the field path
// that triggered it, so a caller can report a useful diagnostic without the
// compiler needing to format one itself.
type CompileError struct {
	// Path is a dotted GraphQL selection path, e.g. "App.components.id",
	// pointing at the field or argument that failed to compile. Empty when
	// the error was raised before any field was entered.
	Path string
	// Field is the specific argument, directive-argument or filter-operator
	// name involved, if any (e.g. "order", "table", "like"). For
	// ErrUnsafeIdentifier it holds the validator's message naming the
	// rejected identifier.
	Field string
	// Err is one of the Err* sentinels above.
	Err error
}

// Error returns the error string.
func (e *CompileError) Error() string {
	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("%s: at %s (%s)", e.Err, e.Path, e.Field)
	case e.Path != "":
		return fmt.Sprintf("%s: at %s", e.Err, e.Path)
	default:
		return e.Err.Error()
	}
}

// Unwrap allows errors.Is(err, ErrUnknownOperator) and friends to see
// through the wrapping CompileError.
func (e *CompileError) Unwrap() error {
	return e.Err
}

func newCompileError(err error, path, field string) *CompileError {
	return &CompileError{Path: path, Field: field, Err: err}
}

// IsUnsupportedSelection reports whether err is (or wraps) ErrUnsupportedSelection.
func IsUnsupportedSelection(err error) bool { return errors.Is(err, ErrUnsupportedSelection) }

// IsUnsupportedOperation reports whether err is (or wraps) ErrUnsupportedOperation.
func IsUnsupportedOperation(err error) bool { return errors.Is(err, ErrUnsupportedOperation) }

// IsUnknownOperator reports whether err is (or wraps) ErrUnknownOperator.
func IsUnknownOperator(err error) bool { return errors.Is(err, ErrUnknownOperator) }

// IsUnknownDirectiveArg reports whether err is (or wraps) ErrUnknownDirectiveArg.
func IsUnknownDirectiveArg(err error) bool { return errors.Is(err, ErrUnknownDirectiveArg) }

// IsUnsupportedValue reports whether err is (or wraps) ErrUnsupportedValueInScalarPosition.
func IsUnsupportedValue(err error) bool {
	return errors.Is(err, ErrUnsupportedValueInScalarPosition)
}

// IsMultiColumnFilter reports whether err is (or wraps) ErrMultiColumnFilter.
func IsMultiColumnFilter(err error) bool { return errors.Is(err, ErrMultiColumnFilter) }

// IsMalformedOrderDirection reports whether err is (or wraps) ErrMalformedOrderDirection.
func IsMalformedOrderDirection(err error) bool {
	return errors.Is(err, ErrMalformedOrderDirection)
}

// IsUnsafeIdentifier reports whether err is (or wraps) ErrUnsafeIdentifier.
func IsUnsafeIdentifier(err error) bool { return errors.Is(err, ErrUnsafeIdentifier) }

// internalError panics with a diagnostic. Spec §7 classifies impossible AST
// shapes (an invariant the caller's GraphQL AST cannot actually produce) as
// programmer errors that should abort rather than be reported to the caller
// as input errors.
func internalError(format string, args ...any) {
	panic(fmt.Sprintf("gql2sql: internal invariant violated: "+format, args...))
}
