// Package errs holds the typed failures a run can end with. Each type wraps
// its cause so callers can use errors.Is on the underlying error and
// errors.As to recover the failure class.
package errs

import (
	"errors"
	"fmt"
)

// SourceUnavailableError reports that the source document could not be
// retrieved (filesystem error, transport error, non-2xx response).
type SourceUnavailableError struct {
	Locator string
	Err     error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Locator, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// MalformedInputError reports that the source was retrieved but is not a JSON
// array of objects.
type MalformedInputError struct {
	// Index is the array position of the offending element, or -1 when the
	// problem is with the document as a whole.
	Index int
	Err   error
}

func (e *MalformedInputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("malformed input: element %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("malformed input: %v", e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// TransformationError reports a value of the wrong type for a derivation.
type TransformationError struct {
	Index int    // position of the record in the loaded input
	Field string // field whose value could not be used
	Err   error
}

func (e *TransformationError) Error() string {
	return fmt.Sprintf("transform record %d field %q: %v", e.Index, e.Field, e.Err)
}

func (e *TransformationError) Unwrap() error { return e.Err }

// WriteError reports that the output file could not be created or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Kind returns a short class name for err suitable for a log field.
func Kind(err error) string {
	var (
		su *SourceUnavailableError
		mi *MalformedInputError
		te *TransformationError
		we *WriteError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &su):
		return "source_unavailable"
	case errors.As(err, &mi):
		return "malformed_input"
	case errors.As(err, &te):
		return "transformation"
	case errors.As(err, &we):
		return "write"
	default:
		return "unknown"
	}
}
