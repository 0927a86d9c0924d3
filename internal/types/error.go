package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind is a machine-readable class of domain failure. All kinds are
// local, recoverable validation/lookup conditions; none is fatal.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
)

// Sentinels for errors.Is checks against any DomainError of the same kind.
var (
	ErrValidation = &DomainError{Kind: KindValidation}
	ErrConflict   = &DomainError{Kind: KindConflict}
	ErrNotFound   = &DomainError{Kind: KindNotFound}
)

// DomainError is a store-level failure carrying the exact user-facing
// message for the notification channel. NotFound errors carry no message:
// the operation is a silent no-op.
type DomainError struct {
	Kind    ErrorKind `json:"type"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches any *DomainError with the same Kind, so
// errors.Is(err, types.ErrConflict) works regardless of message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// HTTPStatus maps the error kind to an HTTP status code.
func (e *DomainError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	case KindNotFound:
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// Validation creates a validation error with a user-facing message.
func Validation(message string) error {
	return &DomainError{Kind: KindValidation, Message: message}
}

// Conflict creates a uniqueness-conflict error with a user-facing message.
func Conflict(message string) error {
	return &DomainError{Kind: KindConflict, Message: message}
}

// NotFound creates a silent not-found error.
func NotFound() error {
	return &DomainError{Kind: KindNotFound}
}

// CustomError is a handler-level error consumed by the global fiber
// error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
