package pdf

import (
	"errors"
	"fmt"
)

// ErrInvalidOption is wrapped by errors caused by bad operation options
// (unknown compression method, too few files to merge, bad opacity, ...).
var ErrInvalidOption = errors.New("invalid option")

// UnsupportedFileError reports an upload that is not a readable PDF.
type UnsupportedFileError struct {
	Name   string
	Reason string
	Err    error
}

func (e *UnsupportedFileError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("unsupported file: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported file %q: %s", e.Name, e.Reason)
}

func (e *UnsupportedFileError) Unwrap() error { return e.Err }

// ExternalToolUnavailableError reports that an optional external binary is
// missing. Callers fall back to a library implementation.
type ExternalToolUnavailableError struct {
	Tool string
	Err  error
}

func (e *ExternalToolUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s is not available", e.Tool)
	}
	return fmt.Sprintf("%s is not available: %v", e.Tool, e.Err)
}

func (e *ExternalToolUnavailableError) Unwrap() error { return e.Err }

// IOError reports a failure while staging or cleaning up temporary files.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func invalidOption(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidOption, fmt.Sprintf(format, args...))
}
