package service

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("forbidden")
var ErrConflict = errors.New("conflict")
var ErrAlreadyProcessed = errors.New("already_processed")

// ValidationError marks bad caller input. Handlers answer it with 400;
// any other unrecognized error is treated as an internal failure.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func invalidInput(format string, args ...interface{}) error {
	return NewValidationError(fmt.Sprintf(format, args...))
}

// RateLimitedError carries the remaining cooldown so callers know how long
// to wait. Hours are whole, ceiling-rounded.
type RateLimitedError struct {
	HoursRemaining int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("you can bump again in %d hour(s)", e.HoursRemaining)
}
