package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrFilterConflict indicates items were added to an extension point
	// whose current value is not a list.
	ErrFilterConflict = errors.New("filter value is not a list")

	// Descriptor load errors. Every LoadError carries exactly one of these as its Kind.

	// ErrUnreadableFile indicates the descriptor file could not be opened or read.
	ErrUnreadableFile = errors.New("unreadable file")

	// ErrMalformedDocument indicates the file is not valid YAML.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrInvalidShape indicates the document root is not a mapping.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrUnknownField indicates unrecognized top-level keys.
	ErrUnknownField = errors.New("unknown field")

	// ErrMissingField indicates a required top-level key is absent or empty.
	ErrMissingField = errors.New("missing field")

	// ErrWrongType indicates a top-level key holds a value of the wrong type.
	ErrWrongType = errors.New("wrong type")

	// ErrInvalidFilter indicates a malformed entry in 'filters'.
	ErrInvalidFilter = errors.New("invalid filter")
)

// LoadError reports why a descriptor file could not be loaded.
// Error() always includes the path so a broken file can be found among many.
type LoadError struct {
	// Path is the descriptor file that failed to load.
	Path string

	// Kind is one of the descriptor load sentinel errors.
	Kind error

	// Message is the human-readable reason.
	Message string

	// Err is the underlying cause, if any (I/O or YAML syntax error).
	Err error
}

// NewLoadError creates a LoadError without an underlying cause.
func NewLoadError(path string, kind error, format string, args ...any) *LoadError {
	return &LoadError{
		Path:    path,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading YAML v1 plugin at '%s': %s", e.Path, e.Message)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// AsLoadError returns the LoadError wrapped in err, if any.
func AsLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
