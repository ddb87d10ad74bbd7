package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors. Strategies and the merge engine return these
// wrapped rather than panicking: expected conditions like "no usable source"
// are typed outcomes. Cancellation is never one of these; it surfaces as
// ctx.Err() so callers branch with errors.Is(err, context.Canceled).
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrValidation   = errors.New("validation failed")

	// ErrNoUsableSource: a document source carried neither inline content nor
	// a readable path.
	ErrNoUsableSource = errors.New("source has neither inline content nor a readable path")

	// ErrUnreadableContainer: the container format (DOCX zip, XML) could not
	// be parsed.
	ErrUnreadableContainer = errors.New("container format could not be parsed")

	// ErrComplementContext: the complement strategy was invoked without the
	// two-source context it requires.
	ErrComplementContext = errors.New("complement extraction requires xml and ocr context fields")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
