package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/relief-service/internal/api/dto"
	"github.com/spec-kit/relief-service/internal/auth"
	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/identity"
	"github.com/spec-kit/relief-service/internal/service"
	apperrors "github.com/spec-kit/relief-service/pkg/util"
)

// AuthHandler manages signup, login, logout, and profile endpoints.
type AuthHandler struct {
	actions   *auth.Actions
	tokens    *auth.TokenManager
	directory *service.DirectoryService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(actions *auth.Actions, tokens *auth.TokenManager, directory *service.DirectoryService) *AuthHandler {
	return &AuthHandler{actions: actions, tokens: tokens, directory: directory}
}

// Signup POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("email, password, name required", nil)
	}
	if !validRole(req.Role) {
		return apperrors.NewValidationError("invalid role", map[string]any{"role": req.Role})
	}
	if req.Role == domain.RoleAdmin {
		return apperrors.NewForbidden("admin accounts cannot self-register")
	}

	profile, err := h.actions.Signup(c.Context(), auth.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     strings.TrimSpace(req.Name),
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	// Volunteers and NGOs become visible to others right away.
	if profile.Role == domain.RoleVolunteer || profile.Role == domain.RoleNGO {
		if err := h.directory.Upsert(c.Context(), *profile); err != nil {
			return err
		}
	}

	return h.session(c, profile, http.StatusCreated)
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.login(c, false)
}

// LoginAdmin POST /auth/admin/login.
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	return h.login(c, true)
}

func (h *AuthHandler) login(c *fiber.Ctx, adminOnly bool) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	var (
		profile *domain.UserProfile
		err     error
	)
	if adminOnly {
		profile, err = h.actions.LoginAdmin(c.Context(), req.Email, req.Password)
	} else {
		profile, err = h.actions.Login(c.Context(), req.Email, req.Password)
	}
	if err != nil {
		return err
	}
	return h.session(c, profile, http.StatusOK)
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.actions.Logout(c.Context(), principal.Profile.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": profileResponse(principal.Profile)})
}

// UpdateProfile PATCH /auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Role != nil && !validRole(*req.Role) {
		return apperrors.NewValidationError("invalid role", map[string]any{"role": *req.Role})
	}

	updated, err := h.actions.Update(c.Context(), principal.Profile.ID, identity.ProfilePatch{
		Name:         req.Name,
		Role:         req.Role,
		ProfileImage: req.ProfileImage,
		CanVolunteer: req.CanVolunteer,
	})
	if err != nil {
		return err
	}

	if updated.Role == domain.RoleVolunteer || updated.Role == domain.RoleNGO {
		if err := h.directory.Upsert(c.Context(), *updated); err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": profileResponse(updated)})
}

func (h *AuthHandler) session(c *fiber.Ctx, profile *domain.UserProfile, status int) error {
	token, expiresAt, err := h.tokens.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.SessionResponse{
		User:      profileResponse(profile),
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}})
}

func profileResponse(profile *domain.UserProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:           profile.ID,
		Email:        profile.Email,
		Name:         profile.Name,
		Role:         profile.Role,
		ProfileImage: profile.ProfileImage,
		CanVolunteer: profile.CanVolunteer,
		IsActive:     profile.IsActive,
	}
}

func validRole(role domain.Role) bool {
	switch role {
	case domain.RoleVictim, domain.RoleVolunteer, domain.RoleNGO, domain.RoleGovernment, domain.RoleAdmin:
		return true
	}
	return false
}
