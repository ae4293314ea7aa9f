package runner

import (
	"errors"
	"fmt"
)

// Sentinel errors for path resolution.
var (
	// ErrNotFound indicates the path given on the command line does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrNotRegular indicates the path is neither a regular file nor a directory.
	ErrNotRegular = errors.New("not a valid file or directory")
)

// FileError records a file that could not be read or written.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
