// Package errors provides structured error types for the asyncdoc compiler.
// Only two conditions abort a compilation: a spec missing its title or
// version, and an operation with an action outside {send, receive}.
// Everything else degrades to absent output fields.
package errors

import "fmt"

// Code is a unique compiler error code.
type Code string

const (
	// CodeMissingRequiredField is raised when a spec-level required field
	// (title, version) is absent (SPC001).
	CodeMissingRequiredField Code = "SPC001"
	// CodeInvalidEnumValue is raised when an operation action is not one
	// of "send" or "receive" (SPC002).
	CodeInvalidEnumValue Code = "SPC002"
)

// CompileError is a hard compilation failure. The diagnostic names the
// declaring symbol and the field (and, where relevant, value) at fault.
type CompileError struct {
	Code   Code   `json:"code"`
	Symbol string `json:"symbol"`
	Field  string `json:"field"`
	Value  string `json:"value,omitempty"`
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	switch e.Code {
	case CodeMissingRequiredField:
		return fmt.Sprintf("%s: %s: missing required field %q", e.Code, e.Symbol, e.Field)
	case CodeInvalidEnumValue:
		return fmt.Sprintf("%s: %s: invalid %s value %q (expected \"send\" or \"receive\")",
			e.Code, e.Symbol, e.Field, e.Value)
	default:
		return fmt.Sprintf("%s: %s: invalid %s", e.Code, e.Symbol, e.Field)
	}
}

// MissingRequiredField reports a required spec-level field that was absent.
func MissingRequiredField(symbol, field string) *CompileError {
	return &CompileError{
		Code:   CodeMissingRequiredField,
		Symbol: symbol,
		Field:  field,
	}
}

// InvalidEnumValue reports a field whose value is outside its allowed set.
func InvalidEnumValue(symbol, field, value string) *CompileError {
	return &CompileError{
		Code:   CodeInvalidEnumValue,
		Symbol: symbol,
		Field:  field,
		Value:  value,
	}
}
