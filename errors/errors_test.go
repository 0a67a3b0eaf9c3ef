package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseErrorFormatting(t *testing.T) {
	err := &ParseError{Offset: 10, Line: 2, Column: 3, Err: ErrTrailingComma}
	if got, want := err.Error(), "json parse error at line 2, column 3: trailing comma"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrTrailingComma) {
		t.Fatal("errors.Is(ErrTrailingComma) = false")
	}
}

func TestSchemaErrorFormatting(t *testing.T) {
	err := NewSchemaError("/properties", "properties", "must be an object")
	if got, want := err.Error(), `invalid schema at "/properties": properties: must be an object`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if err.Code() != CodeSchemaInvalid {
		t.Fatalf("Code() = %q", err.Code())
	}
	if NewDialectError("", "urn:x").Code() != CodeDialectUnknown {
		t.Fatal("dialect error code mismatch")
	}
}

func TestCodeOfWrapped(t *testing.T) {
	tests := []struct {
		err  error
		want Code
	}{
		{fmt.Errorf("compile: %w", &CyclicReferenceError{Cycle: []string{"a", "b", "a"}}), CodeRefCycle},
		{fmt.Errorf("validate: %w", &DepthExceededError{Phase: "validation", Limit: 4}), CodeDepthExceeded},
		{&UnresolvedReferenceError{Ref: "other.json"}, CodeRefUnresolved},
		{&ParseError{Err: ErrUnexpectedEOF}, CodeParse},
		{NotLoadedError{}, CodeSchemaNotLoaded},
	}
	for _, tt := range tests {
		got, ok := CodeOf(tt.err)
		if !ok || got != tt.want {
			t.Fatalf("CodeOf(%v) = %q, %v, want %q", tt.err, got, ok, tt.want)
		}
	}
	if _, ok := CodeOf(errors.New("plain")); ok {
		t.Fatal("CodeOf(plain) ok = true")
	}
}

func TestCyclicReferenceErrorMessage(t *testing.T) {
	err := &CyclicReferenceError{Cycle: []string{"#/definitions/a", "#/definitions/b", "#/definitions/a"}}
	want := "cyclic $ref: #/definitions/a -> #/definitions/b -> #/definitions/a"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
