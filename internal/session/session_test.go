package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/FehCode/financeflow1/internal/config"
	"github.com/FehCode/financeflow1/internal/database"
)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()

	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:session_%s?mode=memory&cache=shared", name)

	store, err := database.Open(config.DatabaseConfig{Path: dsn})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	svc := New(store, opts...)
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return svc
}

func TestService_NotReadyBeforeInitialize(t *testing.T) {
	store, err := database.Open(config.DatabaseConfig{Path: "file:session_uninit?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	svc := New(store)

	if svc.Status() != StatusUninitialized {
		t.Errorf("status = %v, want StatusUninitialized", svc.Status())
	}
	if _, err := svc.SignUp(context.Background(), "A", "a@b.c", "secret"); !errors.Is(err, ErrNotReady) {
		t.Errorf("SignUp error = %v, want ErrNotReady", err)
	}
	if _, err := svc.SignIn(context.Background(), "a@b.c", "secret"); !errors.Is(err, ErrNotReady) {
		t.Errorf("SignIn error = %v, want ErrNotReady", err)
	}
}

func TestService_SignUpSetsCurrentUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "Ana", "ana@mail.com", "secret123")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if user.ID == "" {
		t.Error("no id generated")
	}
	if user.CreatedAt.IsZero() || user.LastLogin.IsZero() {
		t.Error("timestamps not set")
	}
	if !user.CreatedAt.Equal(user.LastLogin) {
		t.Error("created_at and last_login must match at sign-up")
	}

	current := svc.CurrentUser()
	if current == nil || current.ID != user.ID {
		t.Errorf("current user = %+v, want the signed-up user", current)
	}
}

func TestService_SignInUnknownEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "Ana", "ana@mail.com", "secret123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	svc.SignOut()

	_, err := svc.SignIn(ctx, "unregistered@mail.com", "whatever")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
	if svc.CurrentUser() != nil {
		t.Errorf("session user set after failed sign-in")
	}
}

func TestService_SignInUpdatesLastLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.SignUp(ctx, "Ana", "ana@mail.com", "secret123")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	svc.SignOut()

	user, err := svc.SignIn(ctx, "ana@mail.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if user.LastLogin.Before(created.LastLogin) {
		t.Errorf("last_login not advanced: %v -> %v", created.LastLogin, user.LastLogin)
	}
	if svc.CurrentUser() == nil {
		t.Error("session user not set after sign-in")
	}
}

func TestService_SignInIgnoresPasswordByDefault(t *testing.T) {
	// the shipped behavior: sign-in is an email lookup only
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "Ana", "ana@mail.com", "secret123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	svc.SignOut()

	if _, err := svc.SignIn(ctx, "ana@mail.com", "totally-wrong"); err != nil {
		t.Errorf("sign in with wrong password failed without credential check: %v", err)
	}
}

func TestService_CredentialCheckSeam(t *testing.T) {
	svc := newTestService(t, WithCredentialCheck(), WithBcryptCost(4))
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "Ana", "ana@mail.com", "secret123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	svc.SignOut()

	if _, err := svc.SignIn(ctx, "ana@mail.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
	if svc.CurrentUser() != nil {
		t.Error("session user set after rejected credentials")
	}

	if _, err := svc.SignIn(ctx, "ana@mail.com", "secret123"); err != nil {
		t.Errorf("sign in with correct password: %v", err)
	}
}

func TestService_SignOut(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "Ana", "ana@mail.com", "secret123")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	svc.SignOut()

	if svc.CurrentUser() != nil {
		t.Error("current user not cleared")
	}

	// persisted data is untouched
	if _, err := svc.SignIn(ctx, user.Email, "secret123"); err != nil {
		t.Errorf("sign in after sign out: %v", err)
	}
}
