package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestAuth(t *testing.T) *LocalJWTAuth {
	t.Helper()
	a, err := NewLocalJWTAuth("test-secret", 0)
	if err != nil {
		t.Fatalf("Failed to create auth: %v", err)
	}
	return a
}

func TestNewLocalJWTAuth_EmptySecret(t *testing.T) {
	if _, err := NewLocalJWTAuth("", time.Hour); err == nil {
		t.Fatal("Expected error for empty secret")
	}
}

func TestNewLocalJWTAuth_DefaultTTL(t *testing.T) {
	a := newTestAuth(t)
	if a.TokenTTL != 7*24*time.Hour {
		t.Errorf("Expected 7 day TTL, got %v", a.TokenTTL)
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def", "abc.def", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"empty", "", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"missing token", "Bearer ", "", true},
		{"no space", "Bearerabc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.header)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGenerateAndVerifyToken(t *testing.T) {
	a := newTestAuth(t)

	token, expiresAt, err := a.GenerateToken("alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if time.Until(expiresAt) < 6*24*time.Hour {
		t.Errorf("Expected expiry about 7 days out, got %v", expiresAt)
	}

	username, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("Failed to verify token: %v", err)
	}
	if username != "alice" {
		t.Errorf("Expected username alice, got %s", username)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	a := newTestAuth(t)

	issued := time.Now().Add(-8 * 24 * time.Hour)
	a.now = func() time.Time { return issued }
	token, _, err := a.GenerateToken("alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	a.now = time.Now
	if _, err := a.VerifyToken(token); err == nil {
		t.Fatal("Expected expired token to be rejected")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	a := newTestAuth(t)
	token, _, err := a.GenerateToken("alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	other, _ := NewLocalJWTAuth("another-secret", 0)
	if _, err := other.VerifyToken(token); err == nil {
		t.Fatal("Expected token signed with a different secret to be rejected")
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	a := newTestAuth(t)
	if _, err := a.VerifyToken("not-a-jwt"); err == nil {
		t.Fatal("Expected malformed token to be rejected")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	a := newTestAuth(t)

	hash, err := a.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if !strings.HasPrefix(hash, "argon2id$") {
		t.Errorf("Expected argon2id prefix, got %s", hash)
	}

	ok, err := a.VerifyPassword(hash, "s3cret")
	if err != nil || !ok {
		t.Errorf("Expected password to verify, ok=%v err=%v", ok, err)
	}

	ok, err = a.VerifyPassword(hash, "wrong")
	if err != nil || ok {
		t.Errorf("Expected wrong password to fail, ok=%v err=%v", ok, err)
	}

	if _, err := a.VerifyPassword("plain", "s3cret"); err == nil {
		t.Error("Expected error for invalid hash format")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a := newTestAuth(t)
	h1, _ := a.HashPassword("same")
	h2, _ := a.HashPassword("same")
	if h1 == h2 {
		t.Error("Expected different hashes for the same password")
	}
}
