package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/playforge/casino-api/internal/config"
)

func newTestJWT(ttl time.Duration) *JWTService {
	return NewJWT(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: ttl})
}

func TestJWTService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestJWT(time.Hour)

	token, err := svc.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	accountID, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	if accountID != 42 {
		t.Fatalf("account id = %d, want 42", accountID)
	}
}

func TestJWTService_RejectsBadTokens(t *testing.T) {
	t.Parallel()

	svc := newTestJWT(time.Hour)

	token, err := svc.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name  string
		svc   *JWTService
		token string
	}{
		{name: "garbage", svc: svc, token: "not-a-token"},
		{name: "empty", svc: svc, token: ""},
		{
			name:  "wrong_secret",
			svc:   NewJWT(config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour}),
			token: token,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tt.svc.VerifyToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("want ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWT(-time.Minute)

	token, err := svc.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for expired token, got %v", err)
	}
}
