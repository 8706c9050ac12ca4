package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a table that cannot be rendered as valid Go.
	ErrInvalidSchema = errors.New("pogen: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("pogen: missing configuration")
	// ErrGenerationFailed indicates a rendering or filesystem failure.
	ErrGenerationFailed = errors.New("pogen: code generation failed")
)

// SchemaError is returned for a table or column that cannot be generated
// as valid Go.
type SchemaError struct {
	Table   string
	Column  string // empty for table level errors
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	where := "table " + e.Table
	if e.Column != "" {
		where += ", column " + e.Column
	}
	return describe(where, e.Message, e.Cause)
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrInvalidSchema.
func (e *SchemaError) Is(target error) bool { return target == ErrInvalidSchema }

// NewSchemaError returns a new SchemaError.
func NewSchemaError(table, column, message string, cause error) *SchemaError {
	return &SchemaError{Table: table, Column: column, Message: message, Cause: cause}
}

// ConfigError is returned for an invalid emitter setting.
type ConfigError struct {
	Option  string
	Value   any // nil if the setting is missing
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value == nil {
		return describe("invalid "+e.Option, e.Message, nil)
	}
	return describe(fmt.Sprintf("invalid %s %q", e.Option, fmt.Sprint(e.Value)), e.Message, nil)
}

// Is reports whether target is ErrMissingConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrMissingConfig }

// NewConfigError returns a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// GenerationError is returned when a file cannot be rendered or written.
type GenerationError struct {
	Phase   string // mkdir, render, remove or write
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	where := e.Phase
	if e.File != "" {
		where += " " + e.File
	}
	return describe(where, e.Message, e.Cause)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// NewGenerationError returns a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, File: file, Message: message, Cause: cause}
}

// describe formats "pogen: <where>[: <message>][: <cause>]".
func describe(where, message string, cause error) string {
	var b strings.Builder
	b.WriteString("pogen: ")
	b.WriteString(where)
	if message != "" {
		b.WriteString(": ")
		b.WriteString(message)
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
	return b.String()
}

// IsSchemaError reports whether err is or wraps a SchemaError.
func IsSchemaError(err error) bool {
	var e *SchemaError
	return errors.As(err, &e)
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsGenerationError reports whether err is or wraps a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}
