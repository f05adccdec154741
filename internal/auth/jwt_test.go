package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)

	tok, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != "alice" {
		t.Fatalf("username mismatch: got %q want %q", got, "alice")
	}
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService("right-secret", time.Hour).Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewTokenService("wrong-secret", time.Hour).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenService("k", time.Hour).Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Username: "mallory"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := NewTokenService("k", time.Hour).Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRequiresUsername(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("k", time.Hour)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
