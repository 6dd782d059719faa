package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("aggregate validation")
	// ErrInvariant indicates invariant rule violation.
	ErrInvariant = errors.New("aggregate invariant violation")
	// ErrConflict indicates a concurrency conflict.
	ErrConflict = errors.New("aggregate conflict")
	// ErrDuplicateAttendee indicates a roster submission repeating a member.
	ErrDuplicateAttendee = errors.New("duplicate roster attendee")
	// ErrCrossTenantReference indicates a reference to another tenant's row.
	ErrCrossTenantReference = errors.New("cross tenant reference")
)

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

// InvariantError tags an error as invariant violation.
func InvariantError(msg string) error {
	return errors.Join(ErrInvariant, errors.New(strings.TrimSpace(msg)))
}

// ConflictError tags an error as conflict failure.
func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

// DuplicateAttendeeError tags an error as a duplicate roster entry.
func DuplicateAttendeeError(msg string) error {
	return errors.Join(ErrDuplicateAttendee, errors.New(strings.TrimSpace(msg)))
}

// CrossTenantReferenceError tags an error as a foreign-tenant reference.
func CrossTenantReferenceError(msg string) error {
	return errors.Join(ErrCrossTenantReference, errors.New(strings.TrimSpace(msg)))
}

// MapError maps infrastructure/domain failures into aggregate error codes.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*domainagg.Error); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrValidation):
		return domainagg.Wrap(domainagg.CodeValidation, op, err)
	case errors.Is(err, ErrInvariant):
		return domainagg.Wrap(domainagg.CodeInvariantViolation, op, err)
	case errors.Is(err, ErrConflict):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	case errors.Is(err, ErrDuplicateAttendee):
		return domainagg.Wrap(domainagg.CodeDuplicateAttendee, op, err)
	case errors.Is(err, ErrCrossTenantReference):
		return domainagg.Wrap(domainagg.CodeCrossTenantReference, op, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return domainagg.Wrap(domainagg.CodeStorageTimeout, op, err)
	case errors.Is(err, context.Canceled):
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.Wrap(domainagg.CodeConflict, op, err) // unique_violation
		case "23503":
			return domainagg.Wrap(domainagg.CodeInvariantViolation, op, err) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return domainagg.Wrap(domainagg.CodeConflict, op, err) // serialization/deadlock/lock_not_available
		case "57014":
			return domainagg.Wrap(domainagg.CodeStorageTimeout, op, err) // query_canceled (statement_timeout)
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "already exists"):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	case strings.Contains(msg, "deadlock"), strings.Contains(msg, "serialization"):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	case strings.Contains(msg, "timeout"):
		return domainagg.Wrap(domainagg.CodeStorageTimeout, op, err)
	default:
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
}
