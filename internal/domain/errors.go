package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Tour errors
	ErrTourNotFound = errors.New("tour not found")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")

	// Validation errors
	ErrInvalidSeats    = errors.New("seats must be greater than zero")
	ErrInvalidCapacity = errors.New("capacity cannot be negative")
	ErrInvalidCustomer = errors.New("customer details are incomplete")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CapacityError reports a booking request that asked for more seats than the
// tour has left. Available carries the remaining count at the moment of the
// check so callers can show "only N left".
type CapacityError struct {
	TourID    int64
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Only %d seat(s) left", e.Available)
}

// ValidationError reports a request rejected by domain validation. The
// message is safe to echo back to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError creates a ValidationError with the given client-facing
// message.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsCapacityExceeded reports whether err is a capacity conflict and, when it
// is, returns the typed error.
func IsCapacityExceeded(err error) (*CapacityError, bool) {
	var capErr *CapacityError
	if errors.As(err, &capErr) {
		return capErr, true
	}
	return nil, false
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTourNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return true
	}
	return errors.Is(err, ErrInvalidSeats) ||
		errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrInvalidCustomer)
}
