package card

import (
	"fmt"
	"io/fs"
	"os"

	"emperror.dev/errors"
)

// ErrInvalidUserID is returned for user identifiers that can't safely be used in a file name.
const ErrInvalidUserID = errors.Sentinel("invalid user identifier")

// FileSystemError is returned when the output directory or file can't be written.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%v %v: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error {
	return e.Err
}

// fsError wraps err for op on path, dropping any *fs.PathError or *os.LinkError layer that would repeat them.
func fsError(op, path string, err error) *FileSystemError {
	var pe *fs.PathError
	var le *os.LinkError
	switch {
	case errors.As(err, &pe):
		err = pe.Err
	case errors.As(err, &le):
		err = le.Err
	}
	return &FileSystemError{Op: op, Path: path, Err: err}
}

// FontLoadError is returned when a font file can't be read or parsed.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("loading font %v: %v", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error {
	return e.Err
}
