package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrDuplicateAccount    = errors.New("account already exists")
	ErrRateLimited         = errors.New("too many attempts")
	ErrInvalidVerification = errors.New("invalid email or verification code")
	ErrUnauthorized        = errors.New("invalid credentials")
	ErrAccountNotVerified  = errors.New("account is not verified")
	ErrAccountNotFound     = errors.New("account not found")
	ErrDependencyFailure   = errors.New("dependency failure")
)

// ValidationError carries per field failures and matches ErrValidation.
type ValidationError struct {
	Fields validator.ValidationErrors
	err    error
}

func newValidationError(err error) error {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields, err: err}
	}
	return &ValidationError{err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrValidation, e.err)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// RateLimitedError matches ErrRateLimited and tells when the window ends.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s, retry after %s", ErrRateLimited, e.RetryAfter)
}

func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}

func dependencyFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyFailure, op, err)
}
