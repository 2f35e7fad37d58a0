package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrSchema indicates the document does not have the expected structure.
	ErrSchema = errors.New("schema error")

	// ErrMissingField indicates a required key is absent from an object.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidStatusCode indicates a responses key is not an integer in [100,599].
	ErrInvalidStatusCode = errors.New("invalid status code")

	// ErrTypeMismatch indicates a value is present but has the wrong shape.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDuplicateIdentifier indicates a name that must be unique was repeated.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrInvalidValue indicates a value lies outside its permitted set.
	ErrInvalidValue = errors.New("invalid value")

	// ErrParse indicates a decoding failure occurred.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// Kind classifies a SchemaError.
type Kind int

const (
	// MissingField is a required key absent from an object.
	MissingField Kind = iota + 1
	// InvalidStatusCode is a responses key that is not an integer in range.
	InvalidStatusCode
	// TypeMismatch is a value of the wrong shape, e.g. paths not being a mapping.
	TypeMismatch
	// DuplicateIdentifier is a repeated operationId, tag name, or mapping key.
	DuplicateIdentifier
	// InvalidValue is a well-shaped value outside its allowed set.
	InvalidValue
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case InvalidStatusCode:
		return "InvalidStatusCode"
	case TypeMismatch:
		return "TypeMismatch"
	case DuplicateIdentifier:
		return "DuplicateIdentifier"
	case InvalidValue:
		return "InvalidValue"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// sentinel returns the sentinel error matched by this kind.
func (k Kind) sentinel() error {
	switch k {
	case MissingField:
		return ErrMissingField
	case InvalidStatusCode:
		return ErrInvalidStatusCode
	case TypeMismatch:
		return ErrTypeMismatch
	case DuplicateIdentifier:
		return ErrDuplicateIdentifier
	case InvalidValue:
		return ErrInvalidValue
	default:
		return nil
	}
}

// SchemaError represents a structural problem in an OpenAPI document.
type SchemaError struct {
	// Kind identifies which structural rule was broken
	Kind Kind
	// Path is the dotted path to the offending node (e.g., "paths./pets.get.responses")
	Path string
	// Field is the specific key with the issue
	Field string
	// Value is the problematic value (may be nil)
	Value any
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.Kind != 0 {
		msg += " (" + e.Kind.String() + ")"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Field != "" {
		if e.Path != "" && e.Field[0] == '[' {
			msg += e.Field
		} else if e.Path != "" {
			msg += "." + e.Field
		} else {
			msg += " at " + e.Field
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrSchema, and also the sentinel for the error's Kind.
func (e *SchemaError) Is(target error) bool {
	if target == ErrSchema {
		return true
	}
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// ParseError represents a failure to decode the input document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a schema reference with no matching target.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Message provides additional context about the failure
	Message string
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded, e.g. "schema_depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Path is where the limit was hit
	Path string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d)", e.Limit)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
