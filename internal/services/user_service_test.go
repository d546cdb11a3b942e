package services

import (
	"context"
	"errors"
	"testing"

	"panotour/pkg/auth"
)

func setupUserService(t *testing.T) *UserService {
	t.Helper()

	jwtAuth, err := auth.NewLocalJWTAuth("test-secret", 0)
	if err != nil {
		t.Fatalf("Failed to create auth: %v", err)
	}
	return NewUserService(setupTestDB(t), jwtAuth)
}

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	svc := setupUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "wonderland")
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if user.ID == 0 || user.Username != "alice" {
		t.Errorf("Unexpected user: %+v", user)
	}
	if user.PasswordHash == "wonderland" {
		t.Error("Password stored in plain text")
	}

	got, err := svc.Authenticate(ctx, "alice", "wonderland")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Expected user %d, got %d", user.ID, got.ID)
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	svc := setupUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "wonderland"); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	_, err := svc.Register(ctx, "alice", "other-password")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}
}

func TestUserService_AuthenticateFailures(t *testing.T) {
	svc := setupUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "wonderland"); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "wonderland"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUserService_GetByUsername(t *testing.T) {
	svc := setupUserService(t)

	if _, err := svc.GetByUsername(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
