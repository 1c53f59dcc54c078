package pdf

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures surfaced to the caller
type ErrorType string

const (
	ErrorTypeUsage   ErrorType = "usage"
	ErrorTypeLaunch  ErrorType = "launch"
	ErrorTypeWait    ErrorType = "wait"
	ErrorTypeTimeout ErrorType = "timeout"
	ErrorTypeIO      ErrorType = "io"
)

// Error is a classified error with the underlying cause attached
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new classified error
func NewError(errType ErrorType, message string, err error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

func UsageError(message string, err error) *Error {
	return NewError(ErrorTypeUsage, message, err)
}

func LaunchError(message string, err error) *Error {
	return NewError(ErrorTypeLaunch, message, err)
}

func WaitError(message string, err error) *Error {
	return NewError(ErrorTypeWait, message, err)
}

func TimeoutError(message string, err error) *Error {
	return NewError(ErrorTypeTimeout, message, err)
}

func IOError(message string, err error) *Error {
	return NewError(ErrorTypeIO, message, err)
}

// TypeOf returns the type of the first *Error in err's chain, or "" if there is none
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsUsage reports whether err was caused by bad caller input
func IsUsage(err error) bool {
	return TypeOf(err) == ErrorTypeUsage
}
