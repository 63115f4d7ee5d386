package table

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryNotFound is returned when a language root is missing or
	// is not a directory.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrInvalidTableFormat is returned when a file does not hold a flat
	// key to string mapping.
	ErrInvalidTableFormat = errors.New("invalid table format")

	// ErrUnknownFormat is returned when no codec is registered for a file
	// extension.
	ErrUnknownFormat = errors.New("unknown table format")
)

// FileError ties a failure to the table file it happened in
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// invalidf builds an ErrInvalidTableFormat with details
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTableFormat, fmt.Sprintf(format, args...))
}
