// Package errors defines the error taxonomy shared by the Gura parser and
// serializer. Every error carries a 1-based line and column pointing into the
// source text that produced it.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a Gura error.
type Kind int

const (
	// ParseError is a generic syntax failure. The parser surfaces the
	// furthest (rightmost) one seen across backtracking alternatives.
	ParseError Kind = iota
	// InvalidIndent reports tabs in indentation, inconsistent sibling
	// indentation or an unexpected dedent.
	InvalidIndent
	// DuplicateKey reports a key repeated within an object, including
	// collisions introduced by an import merge.
	DuplicateKey
	// DuplicateVariable reports a redefined variable.
	DuplicateVariable
	// DuplicateImport reports a file imported twice during a single parse.
	DuplicateImport
	// VariableNotDefined reports a $name reference with no binding in the
	// document nor in the process environment.
	VariableNotDefined
	// InvalidVariableType reports a non-scalar value interpolated into a
	// string.
	InvalidVariableType
	// InvalidEscape reports an unknown escape sequence in a basic string.
	InvalidEscape
	// FileError reports an import target that is missing or unreadable.
	FileError
	// ImportDepthExceeded reports an import chain deeper than the guard
	// limit.
	ImportDepthExceeded
)

var kindNames = [...]string{
	ParseError:          "parse error",
	InvalidIndent:       "invalid indentation",
	DuplicateKey:        "duplicated key",
	DuplicateVariable:   "duplicated variable",
	DuplicateImport:     "duplicated import",
	VariableNotDefined:  "variable not defined",
	InvalidVariableType: "invalid variable type",
	InvalidEscape:       "invalid escape sequence",
	FileError:           "file error",
	ImportDepthExceeded: "import depth exceeded",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && int(k) >= 0 {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type produced by this module.
type Error struct {
	Kind    Kind
	Line    int // 1-based
	Column  int // 1-based
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at %d:%d: %s: %v", e.Kind, e.Line, e.Column, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
}

// Unwrap allows error unwrapping of filesystem causes.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error at the given position.
func New(kind Kind, line, column int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an Error wrapping an underlying cause, typically an I/O error
// from resolving an import.
func Wrap(kind Kind, line, column int, cause error, format string, args ...interface{}) *Error {
	e := New(kind, line, column, format, args...)
	e.Cause = cause
	return e
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind == kind
	}
	return false
}

// AsError extracts the *Error from err, if any.
func AsError(err error) (*Error, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
