package session

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes load failures.
type ErrorKind string

const (
	KindFileOpen        ErrorKind = "file_open"
	KindTooLarge        ErrorKind = "too_large"
	KindParse           ErrorKind = "parse"
	KindUnsupportedRoot ErrorKind = "unsupported_root"
)

// Targets for errors.Is. Only the Kind is compared.
var (
	ErrFileOpen        = &LoadError{Kind: KindFileOpen}
	ErrTooLarge        = &LoadError{Kind: KindTooLarge}
	ErrParse           = &LoadError{Kind: KindParse}
	ErrUnsupportedRoot = &LoadError{Kind: KindUnsupportedRoot}
)

// LoadError is returned by every failed load. None of them are fatal: the
// session keeps whatever it held before.
type LoadError struct {
	Kind ErrorKind
	Path string
	// Detail is the parser message, the root type name or the size limit,
	// depending on Kind.
	Detail string
	Err    error
}

// Error implements error.
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message(), e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message())
}

// Unwrap returns the wrapped error.
func (e *LoadError) Unwrap() error { return e.Err }

// Is matches any *LoadError of the same Kind.
func (e *LoadError) Is(target error) bool {
	t, ok := target.(*LoadError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Message is the one-line text shown in the status bar.
func (e *LoadError) Message() string {
	switch e.Kind {
	case KindFileOpen:
		return "Could not open file: " + e.Path
	case KindTooLarge:
		return fmt.Sprintf("Could not open file: %s (larger than %s bytes)", e.Path, e.Detail)
	case KindParse:
		return "Failed to parse file: " + e.Detail
	case KindUnsupportedRoot:
		return fmt.Sprintf("Unsupported root: %s (expected array or object)", e.Detail)
	default:
		return "load failed: " + e.Path
	}
}

// UserMessage returns the status text for err, falling back to err.Error()
// for anything that is not a *LoadError.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le.Message()
	}
	return err.Error()
}
