package cleanser

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig matches every error returned while constructing a Cleanser.
	ErrConfig = errors.New("cleanser: invalid configuration")
	// ErrIO matches every error returned while reading sources or writing
	// accepted lines.
	ErrIO = errors.New("cleanser: i/o failure")
	// ErrInvalidUTF8 is the cause carried by an IOError when a source line
	// is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

// ConfigError
// Reports an invalid configuration parameter. A Cleanser only returns it
// from New, never from a later operation.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("cleanser: invalid %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// IOError
// Reports a failure opening, reading or writing a file. Line is the 1-based
// line number that could not be read, or 0 when the failure is not tied to
// a line.
type IOError struct {
	Op   string
	Path string
	Line int
	Err  error
}

func (e *IOError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cleanser: %s %s (line %d): %v", e.Op, e.Path,
			e.Line, e.Err)
	}
	return fmt.Sprintf("cleanser: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
