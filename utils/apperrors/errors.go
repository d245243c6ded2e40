package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Every error returned by the service layer wraps exactly one of these.
var (
	ErrValidation          = errors.New("validation failed")
	ErrConflict            = errors.New("conflict")
	ErrNotFound            = errors.New("resource not found")
	ErrAuthentication      = errors.New("invalid credentials")
	ErrAuthorization       = errors.New("permission denied")
	ErrPersistence         = errors.New("failed to persist changes")
	ErrConstraintViolation = errors.New("constraint violation")
)

// ConstraintKind identifies which storage constraint rejected a write.
type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintNotNull    ConstraintKind = "not_null"
	ConstraintCheck      ConstraintKind = "check"
)

// Error is the application error carrying a human readable message.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ConstraintViolation is returned when a write breaks a declared schema constraint.
type ConstraintViolation struct {
	Kind       ConstraintKind
	Constraint string
	Message    string
	cause      error
}

func (e *ConstraintViolation) Error() string {
	return e.Message
}

// Unwrap exposes ErrConstraintViolation, plus ErrConflict for unique violations so callers
// can treat duplicate keys like any other conflict.
func (e *ConstraintViolation) Unwrap() []error {
	errs := []error{ErrConstraintViolation}
	if e.Kind == ConstraintUnique {
		errs = append(errs, ErrConflict)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

func NewValidationError(format string, args ...interface{}) error {
	return &Error{Err: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) error {
	return &Error{Err: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError builds "<resource> not found".
func NewNotFoundError(resource string) error {
	return &Error{Err: ErrNotFound, Message: resource + " not found"}
}

func NewAuthenticationError() error {
	return &Error{Err: ErrAuthentication, Message: "invalid email or password"}
}

func NewAuthorizationError(message string) error {
	if message == "" {
		message = "access forbidden"
	}
	return &Error{Err: ErrAuthorization, Message: message}
}

// NewPersistenceError hides the storage error behind a generic message. The cause stays in
// the chain for logging.
func NewPersistenceError(cause error) error {
	return &Error{Err: fmt.Errorf("%w: %w", ErrPersistence, cause), Message: "failed to persist changes"}
}

func NewConstraintViolation(kind ConstraintKind, constraint, message string, cause error) error {
	return &ConstraintViolation{Kind: kind, Constraint: constraint, Message: message, cause: cause}
}

// IsAppError reports whether err already belongs to the taxonomy.
func IsAppError(err error) bool {
	for _, target := range []error{ErrValidation, ErrConflict, ErrNotFound, ErrAuthentication,
		ErrAuthorization, ErrPersistence, ErrConstraintViolation} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HTTPStatus maps an error to its response status and machine code.
func HTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrConstraintViolation):
		return http.StatusBadRequest, "CONSTRAINT_VIOLATION"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, ErrConflict):
		return http.StatusBadRequest, "CONFLICT"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden, "FORBIDDEN"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// PublicMessage returns the text safe to show a client.
func PublicMessage(err error) string {
	var cv *ConstraintViolation
	if errors.As(err, &cv) {
		return cv.Message
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		if errors.Is(appErr, ErrPersistence) {
			return "failed to persist changes"
		}
		return appErr.Error()
	}
	return "internal server error"
}
