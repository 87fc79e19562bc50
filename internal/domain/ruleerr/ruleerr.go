// Package ruleerr defines the error taxonomy of the rulebook compiler.
// Every compile failure carries a Code so callers can tell an authoring
// mistake in the schema from a bad type reference or a missing field.
package ruleerr

import (
	"errors"
	"fmt"
)

// Code classifies a compile error.
type Code string

const (
	// CodeSchema marks outdated documents and core-rulebook violations.
	CodeSchema Code = "SCHEMA"
	// CodeTypeResolution marks unknown, duplicate or recursive type names.
	CodeTypeResolution Code = "TYPE_RESOLUTION"
	// CodeFieldValidation marks missing or malformed field values.
	CodeFieldValidation Code = "FIELD_VALIDATION"
	// CodeGrammar marks rule text the mini-language cannot read.
	CodeGrammar Code = "GRAMMAR"
)

// Metadata keys attached to errors.
const (
	KeyName      = "name"
	KeyCategory  = "category"
	KeyMechanism = "mechanism"
	KeyPlaybook  = "playbook"
)

// Sentinels for errors.Is matching by code.
var (
	ErrSchema          = &Error{Code: CodeSchema}
	ErrTypeResolution  = &Error{Code: CodeTypeResolution}
	ErrFieldValidation = &Error{Code: CodeFieldValidation}
	ErrGrammar         = &Error{Code: CodeGrammar}
)

// Error is a compile error with structured metadata.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target has the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Schema creates a schema error.
func Schema(format string, args ...any) *Error {
	return New(CodeSchema, fmt.Sprintf(format, args...))
}

// Grammar creates a grammar error.
func Grammar(format string, args ...any) *Error {
	return New(CodeGrammar, fmt.Sprintf(format, args...))
}

// UnknownType reports a type name missing from the registry.
func UnknownType(name string) *Error {
	return New(CodeTypeResolution, fmt.Sprintf("unknown type %q", name)).With(KeyName, name)
}

// DuplicateType reports a type name registered twice.
func DuplicateType(name string) *Error {
	return New(CodeTypeResolution, fmt.Sprintf("type %q is already defined", name)).With(KeyName, name)
}

// RecursiveType reports a type that references itself while being defined.
func RecursiveType(name string) *Error {
	return New(CodeTypeResolution, fmt.Sprintf("recursive type %q", name)).With(KeyName, name)
}

// MissingField reports a required playbook field with no value.
func MissingField(name, playbook string) *Error {
	return New(CodeFieldValidation, fmt.Sprintf("missing field %s in playbook %s", name, playbook)).
		With(KeyName, name).
		With(KeyPlaybook, playbook)
}

// InvalidField reports a field value that does not fit its type.
func InvalidField(name string, cause error) *Error {
	return Wrap(CodeFieldValidation, fmt.Sprintf("invalid value for field %q", name), cause).With(KeyName, name)
}

// With returns e with key set in its metadata.
func (e *Error) With(key, value string) *Error {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// Annotate attaches key/value to the first *Error in err's chain without
// overwriting an existing value. Errors outside the taxonomy pass through.
func Annotate(err error, key, value string) error {
	var e *Error
	if errors.As(err, &e) {
		if _, ok := e.Metadata[key]; !ok {
			e.With(key, value)
		}
	}
	return err
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// MetadataOf returns the metadata value for key in err's chain, or "".
func MetadataOf(err error, key string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata[key]
	}
	return ""
}
