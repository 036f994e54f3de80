package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/identity"
	apperrors "github.com/spec-kit/relief-service/pkg/util"
)

// Actions coordinates login, signup, logout, and profile updates
// against the external identity capability. All failures surface as
// error results; nothing here is fatal to the process.
type Actions struct {
	provider identity.Provider
	profiles identity.ProfileStore
	holder   *SessionHolder
	logger   *zap.Logger
}

// ActionDependencies bundles requirements for the auth actions.
type ActionDependencies struct {
	Provider identity.Provider
	Profiles identity.ProfileStore
	Holder   *SessionHolder
}

// NewActions builds the action set.
func NewActions(deps ActionDependencies, logger *zap.Logger) *Actions {
	return &Actions{
		provider: deps.Provider,
		profiles: deps.Profiles,
		holder:   deps.Holder,
		logger:   logger,
	}
}

// SignupInput describes a signup request.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// Login verifies credentials and installs the profile as the current
// session. Inactive accounts are rejected and their external session
// revoked.
func (a *Actions) Login(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	return a.login(ctx, email, password, false)
}

// LoginAdmin is the admin-only login path: non-admin roles are rejected
// and the external session revoked.
func (a *Actions) LoginAdmin(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	return a.login(ctx, email, password, true)
}

func (a *Actions) login(ctx context.Context, email, password string, adminOnly bool) (*domain.UserProfile, error) {
	accountID, err := a.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}

	profile, err := a.profiles.Select(ctx, accountID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if !profile.IsActive {
		a.revoke(ctx, accountID)
		return nil, apperrors.NewForbidden("account is deactivated")
	}
	if adminOnly && profile.Role != domain.RoleAdmin {
		a.revoke(ctx, accountID)
		return nil, apperrors.NewForbidden("admin access required")
	}

	if err := a.holder.Set(ctx, *profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// Signup creates the external account, then the profile record with
// defaults. If the profile insert fails after the account was created,
// the account is deleted again so no orphaned credential remains.
func (a *Actions) Signup(ctx context.Context, input SignupInput) (*domain.UserProfile, error) {
	accountID, err := a.provider.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, apperrors.MapError(err)
	}

	profile := domain.UserProfile{
		ID:           accountID,
		Email:        input.Email,
		Name:         input.Name,
		Role:         input.Role,
		CanVolunteer: input.Role != domain.RoleVictim,
		IsActive:     true,
	}
	if err := a.profiles.Insert(ctx, &profile); err != nil {
		if delErr := a.provider.DeleteAccount(ctx, accountID); delErr != nil {
			a.logger.Error("compensating account delete failed",
				zap.String("account_id", accountID), zap.Error(delErr))
		}
		return nil, apperrors.MapError(err)
	}

	if err := a.holder.Set(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &profile, nil
}

// Logout revokes the external session for the given user and clears
// local session state when that user holds it. A caller can only end
// their own session this way, never another user's.
func (a *Actions) Logout(ctx context.Context, userID string) error {
	a.revoke(ctx, userID)
	if current := a.holder.Current(); current != nil && current.ID == userID {
		return a.holder.Clear(ctx)
	}
	return nil
}

// Update patches the allowed profile fields for the given user and, if
// that user holds the current session, merges the result into it.
func (a *Actions) Update(ctx context.Context, userID string, patch identity.ProfilePatch) (*domain.UserProfile, error) {
	updated, err := a.profiles.Update(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, identity.ErrProfileNotFound) {
			return nil, apperrors.NewNotFound("profile", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if current := a.holder.Current(); current != nil && current.ID == userID {
		if err := a.holder.Set(ctx, *updated); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	return updated, nil
}

func (a *Actions) revoke(ctx context.Context, accountID string) {
	if err := a.provider.SignOut(ctx, accountID); err != nil {
		a.logger.Warn("revoke session", zap.String("account_id", accountID), zap.Error(err))
	}
}
