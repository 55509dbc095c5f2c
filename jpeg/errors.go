package jpeg

import (
	"errors"
	"fmt"
)

// ErrUserAbort is returned when the user declines the large job confirmation.
var ErrUserAbort = errors.New("aborted by user")

// InvalidPathError means the directory to optimize does not exist or is not a directory.
type InvalidPathError struct {
	Path string
	Err  error
}

func (e *InvalidPathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid directory %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid directory %q", e.Path)
}

func (e *InvalidPathError) Unwrap() error { return e.Err }

// EncoderFailureError means the encoder left an empty output file behind.
type EncoderFailureError struct {
	Path string
}

func (e *EncoderFailureError) Error() string {
	return fmt.Sprintf("encoder produced no output for %q", e.Path)
}

// FileAccessError wraps a stat, remove or rename failure on a path that was
// expected to exist.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// IsInvalidPath reports whether err is an InvalidPathError.
func IsInvalidPath(err error) bool {
	var e *InvalidPathError
	return errors.As(err, &e)
}

// IsEncoderFailure reports whether err is an EncoderFailureError.
func IsEncoderFailure(err error) bool {
	var e *EncoderFailureError
	return errors.As(err, &e)
}

// IsFileAccess reports whether err is a FileAccessError.
func IsFileAccess(err error) bool {
	var e *FileAccessError
	return errors.As(err, &e)
}
