package identity

import (
	"context"
	"errors"

	"github.com/spec-kit/relief-service/internal/domain"
)

// Sentinel errors surfaced by identity implementations. Callers map
// them to user-facing results; they never escape the action boundary
// as panics.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrProfileNotFound    = errors.New("profile not found")
)

// Provider is the external identity capability. Credential
// verification, account creation, and session revocation are delegated
// here; the rest of the system treats it as opaque.
type Provider interface {
	// SignInWithPassword verifies credentials and returns the external
	// account id.
	SignInWithPassword(ctx context.Context, email, password string) (string, error)
	// SignUp creates an account and returns its external id.
	SignUp(ctx context.Context, email, password string) (string, error)
	// SignOut revokes any active session for the account.
	SignOut(ctx context.Context, accountID string) error
	// DeleteAccount removes the account entirely. Used as the
	// compensating action when profile creation fails after signup.
	DeleteAccount(ctx context.Context, accountID string) error
}

// ProfilePatch is a partial profile update. Nil fields are untouched.
type ProfilePatch struct {
	Name         *string
	Role         *domain.Role
	ProfileImage *string
	CanVolunteer *bool
}

// ProfileStore holds the profile record keyed by the external account
// id.
type ProfileStore interface {
	Select(ctx context.Context, userID string) (*domain.UserProfile, error)
	Insert(ctx context.Context, profile *domain.UserProfile) error
	Update(ctx context.Context, userID string, patch ProfilePatch) (*domain.UserProfile, error)
}
