package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
)

func TestMapErrorSentinels(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domainagg.ErrorCode
	}{
		{"validation", ValidationError("bad input"), domainagg.CodeValidation},
		{"invariant", InvariantError("broken rule"), domainagg.CodeInvariantViolation},
		{"conflict", ConflictError("lost race"), domainagg.CodeConflict},
		{"duplicate attendee", DuplicateAttendeeError("member twice"), domainagg.CodeDuplicateAttendee},
		{"cross tenant", CrossTenantReferenceError("foreign member"), domainagg.CodeCrossTenantReference},
		{"record not found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{"deadline", context.DeadlineExceeded, domainagg.CodeStorageTimeout},
		{"unknown", errors.New("boom"), domainagg.CodeInternal},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError("TestOp", tc.err)
			if got := domainagg.CodeOf(mapped); got != tc.want {
				t.Fatalf("unexpected code: got=%q want=%q (err=%v)", got, tc.want, mapped)
			}
		})
	}
}

func TestMapErrorPostgresCodes(t *testing.T) {
	cases := []struct {
		sqlState string
		want     domainagg.ErrorCode
	}{
		{"23505", domainagg.CodeConflict},
		{"40001", domainagg.CodeConflict},
		{"40P01", domainagg.CodeConflict},
		{"55P03", domainagg.CodeConflict},
		{"23503", domainagg.CodeInvariantViolation},
		{"57014", domainagg.CodeStorageTimeout},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.sqlState, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tc.sqlState, Message: "driver failure"}
			mapped := MapError("TestOp", pgErr)
			if got := domainagg.CodeOf(mapped); got != tc.want {
				t.Fatalf("unexpected code for %s: got=%q want=%q", tc.sqlState, got, tc.want)
			}
		})
	}
}

func TestMapErrorKeepsTaggedErrors(t *testing.T) {
	orig := domainagg.NewError(domainagg.CodeNotFound, "CreateMember", "no such member", nil)
	mapped := MapError("OtherOp", orig)
	if mapped != orig {
		t.Fatalf("expected tagged error passed through unchanged, got %v", mapped)
	}
}

func TestMapErrorNil(t *testing.T) {
	if got := MapError("TestOp", nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestConflictIsRetryable(t *testing.T) {
	mapped := MapError("TestOp", ConflictError("lock timeout"))
	if !domainagg.IsRetryable(mapped) {
		t.Fatalf("expected conflict to be retryable: %v", mapped)
	}
	if domainagg.IsRetryable(MapError("TestOp", ValidationError("bad"))) {
		t.Fatalf("validation must not be retryable")
	}
}
