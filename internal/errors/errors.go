package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Kind is the failure category an operation surfaces to its caller.
// Every validator and every aggregate write returns exactly one of these
// four kinds; the HTTP layer maps them to status codes.
type Kind int

const (
	KindNotFound   Kind = iota + 1 // a referenced id does not resolve to a row
	KindConflict                   // a uniqueness constraint is already occupied
	KindBadRequest                 // a business rule on fetched values failed
	KindInternal                   // infrastructure failure, always fully rolled back
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindBadRequest:
		return "bad_request"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a tagged error value carrying the failure kind, a stable code for
// the frontend, and a message naming the entity and offending value.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a KindNotFound error.
func NotFound(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error.
func Conflict(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// BadRequest builds a KindBadRequest error.
func BadRequest(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindBadRequest, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Internal builds a KindInternal error wrapping the low-level cause.
func Internal(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Code: InternalServerError, Message: fmt.Sprintf(format, args...), Err: err}
}

// As and Is re-export the stdlib helpers so callers importing this package
// do not need a second errors import.
func As(err error, target interface{}) bool { return errors.As(err, target) }
func Is(err, target error) bool             { return errors.Is(err, target) }

// KindOf returns the kind of err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// CodeOf returns the stable code of err, or INTERNAL_SERVER_ERROR.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalServerError
}

// Classify translates a storage-layer error into a tagged Error for the given
// entity. An already tagged error passes through unchanged: once raised, a
// kind is never altered.
//
// The unique-constraint branch is the authoritative Conflict signal. Under
// concurrent writers two transactions can both pass a uniqueness pre-check;
// the loser's insert fails here and still surfaces as Conflict.
func Classify(err error, entity string) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{
			Kind:    KindNotFound,
			Code:    ResourceNotFound,
			Message: fmt.Sprintf("%s not found", entity),
			Err:     err,
		}
	}

	errStr := strings.ToLower(err.Error())

	// Unique constraint violation (postgres 23505, sqlite "UNIQUE constraint failed")
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return &Error{
			Kind:    KindConflict,
			Code:    ResourceAlreadyExists,
			Message: fmt.Sprintf("%s already exists", entity),
			Err:     err,
		}
	}

	// Foreign key violation (postgres 23503, sqlite "FOREIGN KEY constraint failed").
	// A dangling reference on insert means the parent row is gone.
	if strings.Contains(errStr, "foreign key constraint") {
		return &Error{
			Kind:    KindNotFound,
			Code:    ResourceNotFound,
			Message: fmt.Sprintf("%s references a row that does not exist", entity),
			Err:     err,
		}
	}

	// Check constraint violation (postgres 23514)
	if strings.Contains(errStr, "check constraint") {
		return &Error{
			Kind:    KindBadRequest,
			Code:    ValidationInvalidRange,
			Message: fmt.Sprintf("%s violates a value constraint", entity),
			Err:     err,
		}
	}

	// Bounded transaction resources: lock wait or total execution time exceeded.
	if errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(errStr, "lock timeout") ||
		strings.Contains(errStr, "canceling statement due to statement timeout") ||
		strings.Contains(errStr, "deadlock detected") {
		return &Error{
			Kind:    KindInternal,
			Code:    InternalTxnTimeout,
			Message: fmt.Sprintf("transaction on %s exceeded its time bound", entity),
			Err:     err,
		}
	}

	return &Error{
		Kind:    KindInternal,
		Code:    InternalDatabaseError,
		Message: fmt.Sprintf("unexpected storage failure on %s", entity),
		Err:     err,
	}
}
