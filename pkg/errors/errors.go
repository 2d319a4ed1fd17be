package errors

import (
	"errors"
	"fmt"
)

// Domain error types for business logic

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")

	// ErrNotImplemented indicates a capability is not implemented
	ErrNotImplemented = errors.New("not implemented")
)

// Provider errors (LLM and search backends)

var (
	// ErrProvider indicates an upstream provider request failed
	ErrProvider = errors.New("provider request failed")

	// ErrProviderAuth indicates the provider rejected our credentials
	ErrProviderAuth = errors.New("provider authentication failed")

	// ErrRateLimitExceeded indicates a provider rate limit was hit
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Workflow errors

var (
	// ErrHandoffRejected indicates a hand-off target outside the allowed set
	ErrHandoffRejected = errors.New("hand-off target not allowed")

	// ErrWorkflowInvalid indicates the assembled agent graph is malformed
	ErrWorkflowInvalid = errors.New("workflow graph invalid")

	// ErrRunNotFinished indicates a run result was read before completion
	ErrRunNotFinished = errors.New("run not finished")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
