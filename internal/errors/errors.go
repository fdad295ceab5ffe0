// Package errors defines the stable error codes the analyzer reports and a
// wrapped error type carrying one plus a human message and cause.
package errors

import "fmt"

// Code is a stable, machine-checkable identifier for a failure mode.
type Code string

const (
	// UnindexedFiles: one or more source files have no compilation unit in
	// any loaded SCIP index.
	UnindexedFiles Code = "UNINDEXED_FILES"
	// ConflictingIndexUnits: the same file appears in multiple units that
	// disagree on module name.
	ConflictingIndexUnits Code = "CONFLICTING_INDEX_UNITS"
	// IndexReadFailure: the SCIP index could not be opened or a record is
	// malformed.
	IndexReadFailure Code = "INDEX_READ_FAILURE"
	// SyntaxFailure: the tree-sitter visitor failed on a file the analyzer
	// needs.
	SyntaxFailure Code = "SYNTAX_FAILURE"
	// InternalError: unexpected error with no more specific code.
	InternalError Code = "INTERNAL_ERROR"
)

// Error wraps a Code, message, and optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New constructs an Error. cause may be nil.
func New(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is supports errors.Is comparisons keyed on Code alone, so a wrapped Error
// can be matched with errors.Is(err, &Error{Code: SyntaxFailure}) without
// requiring an exact message/cause match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
