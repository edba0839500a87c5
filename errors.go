// Package modelgen generates typed column accessors for data-mapping entities
// from the live schema of a relational table.
//
// The generation pipeline lives in the compiler packages; this package holds
// the error taxonomy shared by all of them.
package modelgen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	// ErrConfig is returned when connection properties are missing or malformed.
	ErrConfig = errors.New("modelgen: invalid configuration")

	// ErrConnection is returned when a database connection cannot be established.
	ErrConnection = errors.New("modelgen: connection failed")

	// ErrSchema is returned when table metadata cannot be read.
	ErrSchema = errors.New("modelgen: schema unavailable")

	// ErrEmission is returned when a unit was synthesized but could not be written.
	ErrEmission = errors.New("modelgen: emission failed")
)

// ConfigError represents missing or malformed connection properties or
// generator options.
type ConfigError struct {
	Entity  string // Entity being processed, if any.
	Key     string // Offending property or option name.
	Message string
	Cause   error
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("modelgen: config error")
	if e.Entity != "" {
		b.WriteString(" for entity ")
		b.WriteString(e.Entity)
	}
	if e.Key != "" {
		fmt.Fprintf(&b, " (key %q)", e.Key)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches ConfigError.
// This allows errors.Is(configErr, ErrConfig) to return true.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewConfigError returns a new ConfigError for the given key.
func NewConfigError(key, message string, cause error) *ConfigError {
	return &ConfigError{Key: key, Message: message, Cause: cause}
}

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigError
	return errors.As(err, &e) || errors.Is(err, ErrConfig)
}

// ConnectionError represents a failure to open or verify a database connection.
type ConnectionError struct {
	Entity  string
	Dialect string
	Source  string // Data source with credentials redacted.
	Cause   error
}

// Error returns the error string.
func (e *ConnectionError) Error() string {
	var b strings.Builder
	b.WriteString("modelgen: connection error")
	if e.Entity != "" {
		b.WriteString(" for entity ")
		b.WriteString(e.Entity)
	}
	if e.Dialect != "" {
		fmt.Fprintf(&b, " (%s", e.Dialect)
		if e.Source != "" {
			fmt.Fprintf(&b, " %s", e.Source)
		}
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches ConnectionError.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// NewConnectionError returns a new ConnectionError. The source must already
// be redacted by the caller.
func NewConnectionError(dialect, source string, cause error) *ConnectionError {
	return &ConnectionError{Dialect: dialect, Source: source, Cause: cause}
}

// IsConnectionError returns true if the error is a ConnectionError.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConnectionError
	return errors.As(err, &e) || errors.Is(err, ErrConnection)
}

// SchemaError represents a failure to read the metadata of a table, for
// example because the table does not exist.
type SchemaError struct {
	Entity  string
	Table   string
	Message string
	Cause   error
}

// Error returns the error string.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("modelgen: schema error")
	if e.Table != "" {
		fmt.Fprintf(&b, " on table %q", e.Table)
	}
	if e.Entity != "" {
		b.WriteString(" for entity ")
		b.WriteString(e.Entity)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// NewSchemaError returns a new SchemaError for the given table.
func NewSchemaError(table, message string, cause error) *SchemaError {
	return &SchemaError{Table: table, Message: message, Cause: cause}
}

// IsSchemaError returns true if the error is a SchemaError.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaError
	return errors.As(err, &e) || errors.Is(err, ErrSchema)
}

// EmissionError reports that a unit was synthesized but rendering or writing
// it failed. Callers use it to tell "generated but not emitted" apart from
// upstream failures.
type EmissionError struct {
	Entity string
	Unit   string // Name of the generated unit.
	Path   string // Destination file, if known.
	Cause  error
}

// Error returns the error string.
func (e *EmissionError) Error() string {
	var b strings.Builder
	b.WriteString("modelgen: emission error")
	if e.Unit != "" {
		b.WriteString(" for unit ")
		b.WriteString(e.Unit)
	}
	if e.Entity != "" {
		b.WriteString(" of entity ")
		b.WriteString(e.Entity)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (file: %s)", e.Path)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *EmissionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches EmissionError.
func (e *EmissionError) Is(target error) bool {
	return target == ErrEmission
}

// NewEmissionError returns a new EmissionError for the given unit.
func NewEmissionError(unit, path string, cause error) *EmissionError {
	return &EmissionError{Unit: unit, Path: path, Cause: cause}
}

// IsEmissionError returns true if the error is an EmissionError.
func IsEmissionError(err error) bool {
	if err == nil {
		return false
	}
	var e *EmissionError
	return errors.As(err, &e) || errors.Is(err, ErrEmission)
}

// WithEntity attaches the entity name to the typed errors of this package
// that do not carry one yet. Other errors are returned unchanged.
func WithEntity(err error, entity string) error {
	var (
		cfg  *ConfigError
		conn *ConnectionError
		sch  *SchemaError
		emit *EmissionError
	)
	switch {
	case errors.As(err, &cfg):
		if cfg.Entity == "" {
			cfg.Entity = entity
		}
	case errors.As(err, &conn):
		if conn.Entity == "" {
			conn.Entity = entity
		}
	case errors.As(err, &sch):
		if sch.Entity == "" {
			sch.Entity = entity
		}
	case errors.As(err, &emit):
		if emit.Entity == "" {
			emit.Entity = entity
		}
	}
	return err
}
