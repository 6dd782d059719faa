package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/requestdata"
)

func newTestAuthService(t *testing.T, secret string) AuthService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return NewAuthService(log, nil, nil, secret, time.Hour)
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSetContextFromToken(t *testing.T) {
	const secret = "test-secret"
	svc := newTestAuthService(t, secret)

	userID := uuid.New()
	churchID := uuid.New()
	token := signTestToken(t, secret, jwt.MapClaims{
		"sub":       userID.String(),
		"church_id": churchID.String(),
		"role":      RoleAdmin,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatal("expected request data on context")
	}
	if rd.UserID != userID || rd.ChurchID != churchID || rd.Role != RoleAdmin {
		t.Fatalf("request data mismatch: %+v", rd)
	}
}

func TestSetContextFromTokenRejectsBadTokens(t *testing.T) {
	const secret = "test-secret"
	svc := newTestAuthService(t, secret)
	userID, churchID := uuid.New(), uuid.New()

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", signTestToken(t, "other-secret", jwt.MapClaims{
			"sub":       userID.String(),
			"church_id": churchID.String(),
			"exp":       time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", signTestToken(t, secret, jwt.MapClaims{
			"sub":       userID.String(),
			"church_id": churchID.String(),
			"exp":       time.Now().Add(-time.Hour).Unix(),
		})},
		{"missing church claim", signTestToken(t, secret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SetContextFromToken(context.Background(), tc.token); err == nil {
				t.Fatal("expected rejection")
			}
		})
	}
}
