package application

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the kind of every "customer or image does not exist" failure.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicateResource is the kind returned when an email is already taken.
	ErrDuplicateResource = errors.New("duplicate resource")
	// ErrValidation is the kind returned for requests that cannot be applied, e.g. no-op updates.
	ErrValidation = errors.New("validation failed")
	// ErrStorage is the kind returned when the record or blob store fails.
	ErrStorage = errors.New("storage failure")

	// ErrInvalidCredentials is returned as-is for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error carries a caller-facing message for one of the kinds above.
// Cause is kept for logs only and is not reachable through errors.Unwrap.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func notFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func duplicatef(format string, args ...any) error {
	return &Error{Kind: ErrDuplicateResource, Message: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func storageError(cause error) error {
	return &Error{Kind: ErrStorage, Message: ErrStorage.Error(), Cause: cause}
}
