package errors

import (
	"errors"
)

// ErrNotFound is returned when an id does not resolve to a live record.
var ErrNotFound = errors.New("record not found")

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

var (
	ErrEmptyName       = NewValidationError("Name must not be empty")
	ErrInvalidAmount   = NewValidationError("Amount must be greater than zero")
	ErrAmountTooLarge  = NewValidationError("Amount must not exceed 999999999999.99")
	ErrInvalidKind     = NewValidationError("Kind must be 'income' or 'expense'")
	ErrMissingDate     = NewValidationError("Date is required")
	ErrInvalidDate     = NewValidationError("Date must be in YYYY-MM-DD format")
	ErrMissingTime     = NewValidationError("Time is required")
	ErrInvalidTime     = NewValidationError("Time must be in HH:MM or HH:MM:SS format")
	ErrNulCharacter    = NewValidationError("Text fields must not contain NUL characters")
	ErrDescriptionSize = NewValidationError("Description must be at most 500 characters")
)
