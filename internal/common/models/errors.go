package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed workflow call. All four kinds are recoverable:
// the caller redisplays the unchanged state plus the message.
type ErrorKind string

const (
	ErrUnauthorized       ErrorKind = "unauthorized"       // guard failed for this actor
	ErrInvalidTransition  ErrorKind = "invalid_transition" // action not defined for current state
	ErrValidation         ErrorKind = "validation"         // missing or malformed input
	ErrPersistenceFailure ErrorKind = "persistence"        // store rejected the write
)

type WorkflowError struct {
	Kind    ErrorKind
	Message string
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func Unauthorizedf(format string, args ...any) error {
	return &WorkflowError{Kind: ErrUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func InvalidTransitionf(format string, args ...any) error {
	return &WorkflowError{Kind: ErrInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) error {
	return &WorkflowError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func Persistencef(format string, args ...any) error {
	return &WorkflowError{Kind: ErrPersistenceFailure, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind, defaulting unknown errors to persistence
// failures so that raw driver errors never masquerade as guard decisions.
func KindOf(err error) ErrorKind {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Kind
	}
	return ErrPersistenceFailure
}
