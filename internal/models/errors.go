package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrToolInvocation ErrorType = iota
	ErrParse
	ErrUnsupportedToolVersion
	ErrValidation
	ErrFileRead
	ErrFileOp
	ErrBuild
	ErrSigning
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrToolInvocation:
		return "ToolInvocation"
	case ErrParse:
		return "Parse"
	case ErrUnsupportedToolVersion:
		return "UnsupportedToolVersion"
	case ErrValidation:
		return "Validation"
	case ErrFileRead:
		return "FileRead"
	case ErrFileOp:
		return "FileOp"
	case ErrBuild:
		return "Build"
	case ErrSigning:
		return "Signing"
	default:
		return "Unknown"
	}
}

// PackagingError represents an error raised by one step of a packaging run
type PackagingError struct {
	Type ErrorType
	Step string
	Err  error
}

// Error implements the error interface. Only the outermost error prints its
// type so that nested steps read as a single chain.
func (e *PackagingError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.message())
}

func (e *PackagingError) message() string {
	var inner string
	if pe, ok := e.Err.(*PackagingError); ok {
		inner = pe.message()
	} else if e.Err != nil {
		inner = e.Err.Error()
	}

	if e.Step == "" {
		return inner
	}
	return fmt.Sprintf("%s: %s", e.Step, inner)
}

// Unwrap returns the wrapped error
func (e *PackagingError) Unwrap() error {
	return e.Err
}

// Wrap attaches an error type and the name of the failed step to err.
// It returns nil when err is nil.
func Wrap(t ErrorType, step string, err error) error {
	if err == nil {
		return nil
	}
	return &PackagingError{Type: t, Step: step, Err: err}
}

// WrapStep names the failed step while keeping the type of an already
// classified error. Unclassified errors get the fallback type.
func WrapStep(step string, fallback ErrorType, err error) error {
	if err == nil {
		return nil
	}
	var pe *PackagingError
	if errors.As(err, &pe) {
		return &PackagingError{Type: pe.Type, Step: step, Err: err}
	}
	return &PackagingError{Type: fallback, Step: step, Err: err}
}

// IsType reports whether any PackagingError in err's chain has type t
func IsType(err error, t ErrorType) bool {
	for err != nil {
		var pe *PackagingError
		if !errors.As(err, &pe) {
			return false
		}
		if pe.Type == t {
			return true
		}
		err = pe.Err
	}
	return false
}
