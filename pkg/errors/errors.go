package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidAmount      = errors.New("invalid payment amount")
	ErrExceedsRemaining   = errors.New("payment amount exceeds remaining balance")
	ErrAlreadySettled     = errors.New("installment is already settled")
	ErrSubmissionInFlight = errors.New("a payment submission is already in flight")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("missing or expired credential")
	ErrNetwork            = errors.New("network failure")
	ErrServer             = errors.New("server error")
	ErrUnknownStatus      = errors.New("unknown installment status")
)

// BusinessError represents a classified failure with a stable code.
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeExceedsRemaining   = "EXCEEDS_REMAINING"
	ErrCodeAlreadySettled     = "ALREADY_SETTLED"
	ErrCodeSubmissionInFlight = "SUBMISSION_IN_FLIGHT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeNetworkError       = "NETWORK_ERROR"
	ErrCodeServerError        = "SERVER_ERROR"
	ErrCodeUnknownStatus      = "UNKNOWN_STATUS"
)

// CodeOf returns the stable code of a classified error, or
// SERVER_ERROR for anything unclassified.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ErrCodeServerError
}

// IsValidation reports whether the error was raised locally before any
// network call was made.
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case ErrCodeValidation, ErrCodeExceedsRemaining, ErrCodeAlreadySettled, ErrCodeSubmissionInFlight:
		return true
	}
	return false
}

// Wrap common errors with business context

func WrapInvalidAmount(raw string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf("amount %q is not a valid positive value", raw),
		ErrInvalidAmount,
	)
}

func WrapExceedsRemaining(amount, remaining string) *BusinessError {
	return NewBusinessError(
		ErrCodeExceedsRemaining,
		fmt.Sprintf("payment of %s exceeds remaining balance of %s", amount, remaining),
		ErrExceedsRemaining,
	)
}

func WrapAlreadySettled(installmentID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeAlreadySettled,
		fmt.Sprintf("installment %s is %s and accepts no further payments", installmentID, status),
		ErrAlreadySettled,
	)
}

func WrapSubmissionInFlight(installmentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeSubmissionInFlight,
		fmt.Sprintf("a payment for installment %s is already being submitted", installmentID),
		ErrSubmissionInFlight,
	)
}

func WrapNotFound(resource, id string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("%s %s not found", resource, id),
		ErrNotFound,
	)
}

func WrapUnauthorized(detail string) *BusinessError {
	if detail == "" {
		detail = "credential is missing or expired"
	}
	return NewBusinessError(ErrCodeUnauthorized, detail, ErrUnauthorized)
}

func WrapNetworkError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeNetworkError,
		"could not reach the payment service",
		fmt.Errorf("%w: %w", ErrNetwork, err),
	)
}

// WrapServerError prefers the server-provided message when present.
func WrapServerError(message string, status int) *BusinessError {
	if message == "" {
		message = "payment processing error"
	}
	return NewBusinessError(
		ErrCodeServerError,
		message,
		fmt.Errorf("%w: http status %d", ErrServer, status),
	)
}

func WrapUnknownStatus(raw string) *BusinessError {
	return NewBusinessError(
		ErrCodeUnknownStatus,
		fmt.Sprintf("status %q is outside the known set", raw),
		ErrUnknownStatus,
	)
}
