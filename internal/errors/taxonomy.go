package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies an error by how the caller should react:
// validation/conflict/not_found require a changed request, transient is safe
// to retry from scratch, internal is neither.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindTransient  Kind = "transient"
	KindInternal   Kind = "internal"
)

// Error is the taxonomy error carried from the data layer to the surface.
type Error struct {
	Kind    Kind
	Code    string // stable code constant from codes.go
	Message string
	Err     error // wrapped cause, may be nil
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

// Constructors

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Transient(message string, err error) *Error {
	return &Error{Kind: KindTransient, Code: InternalTransient, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: InternalDatabaseError, Message: message, Err: err}
}

// IsKind reports whether err (or anything it wraps) is a taxonomy error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Postgres error classes surfaced by the pgx driver under gorm.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgSerializationFail   = "40001"
	pgDeadlockDetected    = "40P01"
	pgLockNotAvailable    = "55P03"
)

// Classify maps a storage-engine error to the taxonomy. context is a short
// operation label used in the message ("create review", "checkout", ...).
// Already-classified errors pass through unchanged.
func Classify(err error, context string) *Error {
	if err == nil {
		return nil
	}

	var already *Error
	if errors.As(err, &already) {
		return already
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{
			Kind:    KindNotFound,
			Code:    ResourceNotFound,
			Message: fmt.Sprintf("%s: record not found", context),
			Err:     err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &Error{
				Kind:    KindConflict,
				Code:    ResourceAlreadyExists,
				Message: fmt.Sprintf("%s: already exists", context),
				Err:     err,
			}
		case pgForeignKeyViolation:
			return &Error{
				Kind:    KindNotFound,
				Code:    ResourceNotFound,
				Message: fmt.Sprintf("%s: referenced record does not exist", context),
				Err:     err,
			}
		case pgNotNullViolation, pgCheckViolation:
			return &Error{
				Kind:    KindValidation,
				Code:    ValidationInvalidInput,
				Message: fmt.Sprintf("%s: value violates a column constraint", context),
				Err:     err,
			}
		case pgSerializationFail, pgDeadlockDetected, pgLockNotAvailable:
			return Transient(fmt.Sprintf("%s: retry the transaction", context), err)
		}
	}

	// The sqlite driver used in tests reports constraint failures as text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint failed"):
		return &Error{
			Kind:    KindConflict,
			Code:    ResourceAlreadyExists,
			Message: fmt.Sprintf("%s: already exists", context),
			Err:     err,
		}
	case strings.Contains(msg, "foreign key constraint failed"):
		return &Error{
			Kind:    KindNotFound,
			Code:    ResourceNotFound,
			Message: fmt.Sprintf("%s: referenced record does not exist", context),
			Err:     err,
		}
	case strings.Contains(msg, "check constraint failed"), strings.Contains(msg, "not null constraint failed"):
		return &Error{
			Kind:    KindValidation,
			Code:    ValidationInvalidInput,
			Message: fmt.Sprintf("%s: value violates a column constraint", context),
			Err:     err,
		}
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "deadlock"):
		return Transient(fmt.Sprintf("%s: retry the transaction", context), err)
	}

	return Internal(fmt.Sprintf("%s failed", context), err)
}
