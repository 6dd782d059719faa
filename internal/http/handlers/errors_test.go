package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/response"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/services"
)

func TestServiceErrorStatusMapping(t *testing.T) {
	agg := func(code domainagg.ErrorCode) error {
		return domainagg.NewError(code, "ChurchStats.Test", "test failure", nil)
	}
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing row", services.ErrNotFound, http.StatusNotFound, "not_found"},
		{"validation", agg(domainagg.CodeValidation), http.StatusBadRequest, "validation"},
		{"not found", agg(domainagg.CodeNotFound), http.StatusNotFound, "not_found"},
		{"duplicate attendee", agg(domainagg.CodeDuplicateAttendee), http.StatusConflict, "duplicate_attendee"},
		{"cross tenant", agg(domainagg.CodeCrossTenantReference), http.StatusUnprocessableEntity, "cross_tenant_reference"},
		{"conflict", agg(domainagg.CodeConflict), http.StatusConflict, "conflict"},
		{"storage timeout", agg(domainagg.CodeStorageTimeout), http.StatusGatewayTimeout, "storage_timeout"},
		{"invariant violation", agg(domainagg.CodeInvariantViolation), http.StatusUnprocessableEntity, "invariant_violation"},
		{"untagged", fmt.Errorf("broken pipe"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := serviceError(tc.err)
			if e == nil {
				t.Fatal("serviceError returned nil")
			}
			if e.Status != tc.status {
				t.Fatalf("status: got=%d want=%d", e.Status, tc.status)
			}
			if e.Code != tc.code {
				t.Fatalf("code: got=%q want=%q", e.Code, tc.code)
			}
		})
	}
}

func TestRespondServiceErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondServiceError(c, domainagg.NewError(domainagg.CodeDuplicateAttendee, "ChurchStats.ReplaceRoster", "member listed twice", nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusConflict)
	}
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Error.Code != "duplicate_attendee" {
		t.Fatalf("envelope code: got=%q want=%q", env.Error.Code, "duplicate_attendee")
	}
	if env.Error.Message == "" {
		t.Fatal("envelope message is empty")
	}
}
