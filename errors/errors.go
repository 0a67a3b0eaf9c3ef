package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Parse failure causes wrapped by ParseError.
var (
	ErrEmptyInput     = errors.New("empty input")
	ErrUnexpectedEOF  = errors.New("unexpected end of input")
	ErrInvalidChar    = errors.New("invalid character")
	ErrInvalidEscape  = errors.New("invalid escape sequence")
	ErrInvalidUTF8    = errors.New("invalid UTF-8")
	ErrControlChar    = errors.New("control character in string")
	ErrInvalidNumber  = errors.New("invalid number literal")
	ErrTrailingComma  = errors.New("trailing comma")
	ErrTrailingData   = errors.New("data after top-level value")
	ErrDepthLimit     = errors.New("nesting depth exceeds MaxDepth")
	ErrUnterminated   = errors.New("unterminated string")
	ErrExpectedColon  = errors.New("expected ':' after object key")
	ErrExpectedKey    = errors.New("expected string object key")
	ErrExpectedValue  = errors.New("expected value")
	ErrExpectedSepEnd = errors.New("expected ',' or closing bracket")
)

// ParseError reports malformed JSON input with location context.
type ParseError struct {
	Offset int64
	Line   int
	Column int
	Err    error
}

// Error formats the parse error with location and cause.
func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("json parse error at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("json parse error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Code returns CodeParse.
func (e *ParseError) Code() Code { return CodeParse }

// SchemaError reports a structurally invalid schema.
type SchemaError struct {
	Err     error
	Pointer string
	Keyword string
	Reason  string
	code    Code
}

// NewSchemaError builds a SchemaError for keyword at pointer.
func NewSchemaError(pointer, keyword, format string, args ...any) *SchemaError {
	return &SchemaError{Pointer: pointer, Keyword: keyword, Reason: fmt.Sprintf(format, args...)}
}

// NewDialectError builds a SchemaError for an unrecognised $schema value.
func NewDialectError(pointer, dialect string) *SchemaError {
	return &SchemaError{
		Pointer: pointer,
		Keyword: "$schema",
		Reason:  fmt.Sprintf("unknown dialect %q", dialect),
		code:    CodeDialectUnknown,
	}
}

// Error formats the schema error.
func (e *SchemaError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("invalid schema")
	if e.Pointer != "" {
		fmt.Fprintf(&b, " at %q", e.Pointer)
	}
	if e.Keyword != "" {
		fmt.Fprintf(&b, ": %s", e.Keyword)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes the underlying cause.
func (e *SchemaError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Code returns the structural code for the error.
func (e *SchemaError) Code() Code {
	if e == nil || e.code == "" {
		return CodeSchemaInvalid
	}
	return e.code
}

// CyclicReferenceError reports a $ref chain that re-enters itself without
// descending into the instance.
type CyclicReferenceError struct {
	Cycle []string
}

// Error formats the cycle path.
func (e *CyclicReferenceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "cyclic $ref: " + strings.Join(e.Cycle, " -> ")
}

// Code returns CodeRefCycle.
func (e *CyclicReferenceError) Code() Code { return CodeRefCycle }

// UnresolvedReferenceError reports a $ref target that could not be located.
type UnresolvedReferenceError struct {
	Err  error
	Ref  string
	Base string
}

// Error formats the unresolved reference.
func (e *UnresolvedReferenceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("unresolved $ref %q", e.Ref)
	if e.Base != "" {
		msg += fmt.Sprintf(" (base %s)", e.Base)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *UnresolvedReferenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Code returns CodeRefUnresolved.
func (e *UnresolvedReferenceError) Code() Code { return CodeRefUnresolved }

// DepthExceededError reports pathological nesting during compilation or validation.
type DepthExceededError struct {
	Phase   string
	Pointer string
	Limit   int
}

// Error formats the depth error.
func (e *DepthExceededError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Pointer == "" {
		return fmt.Sprintf("%s depth exceeds limit %d", e.Phase, e.Limit)
	}
	return fmt.Sprintf("%s depth exceeds limit %d at %q", e.Phase, e.Limit, e.Pointer)
}

// Code returns CodeDepthExceeded.
func (e *DepthExceededError) Code() Code { return CodeDepthExceeded }

// NotLoadedError reports validation against a nil or uncompiled schema.
type NotLoadedError struct{}

// Error returns the error string.
func (NotLoadedError) Error() string { return "schema not loaded" }

// Code returns CodeSchemaNotLoaded.
func (NotLoadedError) Code() Code { return CodeSchemaNotLoaded }

// CodeOf returns the structural code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var coded interface{ Code() Code }
	if err == nil || !errors.As(err, &coded) {
		return "", false
	}
	return coded.Code(), true
}
