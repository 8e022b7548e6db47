// Package session tracks the current user for the process lifetime and
// owns the sign-up / sign-in / sign-out flows over the record store.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/FehCode/financeflow1/internal/database"
	"github.com/FehCode/financeflow1/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrUserNotFound is returned by SignIn when no user exists for the
// given email.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials is returned by SignIn only when the credential
// check seam is enabled and the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotReady is returned when an operation runs before Initialize has
// completed.
var ErrNotReady = errors.New("session service not ready")

// Status models the service lifecycle. No operation other than
// Initialize may run before StatusReady.
type Status int

const (
	StatusUninitialized Status = iota
	StatusReady
)

// Service is an explicitly constructed identity service; pass it to the
// components that need it rather than reaching for a global.
type Service struct {
	store *database.Store

	mu      sync.Mutex
	status  Status
	current *models.User

	verifyPassword bool
	bcryptCost     int
}

// Option customizes a Service.
type Option func(*Service)

// WithCredentialCheck enables bcrypt verification of the password at
// sign-in. Off by default: the shipped behavior signs in by email lookup
// alone, which is a known gap rather than a feature (a hash is always
// stored at sign-up so this can be switched on without a migration).
func WithCredentialCheck() Option {
	return func(s *Service) { s.verifyPassword = true }
}

// WithBcryptCost overrides the hash cost used at sign-up.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// New constructs a Service over an opened store.
func New(store *database.Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		status:     StatusUninitialized,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize brings the store up and moves the service to Ready. Safe to
// call more than once.
func (s *Service) Initialize(ctx context.Context) error {
	if err := s.store.Initialize(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.status = StatusReady
	s.mu.Unlock()
	return nil
}

// Status returns the current lifecycle state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CurrentUser returns the signed-in user, or nil when no session exists.
func (s *Service) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SignUp creates a user with a generated id, persists it and makes it the
// current session user. Email uniqueness is not pre-checked; the store's
// unique index rejects a duplicate address.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	if s.Status() != StatusReady {
		return nil, ErrNotReady
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		CreatedAt:    now,
		LastLogin:    now,
		PasswordHash: string(hash),
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	return user, nil
}

// SignIn looks the user up by email, stamps last_login and makes the user
// current. An unknown email yields ErrUserNotFound and leaves the session
// untouched.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	if s.Status() != StatusReady {
		return nil, ErrNotReady
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if s.verifyPassword {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	user.LastLogin = time.Now()
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	return user, nil
}

// SignOut clears the current session user. Persisted data is untouched.
func (s *Service) SignOut() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
