package book

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record matches the requested isbn.
	ErrNotFound = errors.New("book not found")

	// ErrAlreadyExists is returned by Create when the isbn is already stored.
	ErrAlreadyExists = errors.New("book already exists")

	// ErrTranscode is returned when a stored element cannot be read as a book.
	ErrTranscode = errors.New("invalid book element")

	// ErrValidation is returned when a record breaks a required-field rule.
	ErrValidation = errors.New("invalid book")

	// ErrInvalidArgument is returned for missing or blank call parameters.
	ErrInvalidArgument = errors.New("invalid argument")
)

// FieldError reports the field responsible for a transcode or validation
// failure. It unwraps to its Kind.
type FieldError struct {
	Kind  error
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return e.Msg
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func transcodeErr(field, format string, args ...any) error {
	return &FieldError{Kind: ErrTranscode, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func validationErr(field, msg string) error {
	return &FieldError{Kind: ErrValidation, Field: field, Msg: msg}
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
