package engine

import (
	"errors"
	"fmt"
	"syscall"
)

// Kind classifies an engine error.
type Kind int

const (
	KindSourceNotFound Kind = iota + 1
	KindSourceAccessDenied
	KindInvalidPath
	KindInvalidState
	KindEnumerationFailed
	KindReadFailed
	KindWriteFailed
	KindDirCreateFailed
	KindChecksumFailed
)

var kindNames = [...]string{
	KindSourceNotFound:     "source not found",
	KindSourceAccessDenied: "source not accessible",
	KindInvalidPath:        "invalid path",
	KindInvalidState:       "invalid state",
	KindEnumerationFailed:  "enumeration failed",
	KindReadFailed:         "read failed",
	KindWriteFailed:        "write failed",
	KindDirCreateFailed:    "directory creation failed",
	KindChecksumFailed:     "checksum failed",
}

func (k Kind) String() string {
	if k >= 1 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown error"
}

// Error is the engine's error type: a classified kind, the path involved
// and the underlying cause when one exists.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Path != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf returns the Kind carried by err, or 0 if err is not an engine
// error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// OSCode extracts the raw OS error code (errno) from err, when one exists.
func OSCode(err error) (int, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno), true
	}
	return 0, false
}
