package dto

import "github.com/spec-kit/relief-service/internal/domain"

// SignupRequest registers a new participant.
type SignupRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
}

// LoginRequest authenticates a participant.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest patches the caller's profile. Omitted fields are
// left unchanged.
type UpdateProfileRequest struct {
	Name         *string      `json:"name,omitempty"`
	Role         *domain.Role `json:"role,omitempty"`
	ProfileImage *string      `json:"profileImage,omitempty"`
	CanVolunteer *bool        `json:"canVolunteer,omitempty"`
}

// SessionResponse is the authenticated profile plus access token.
type SessionResponse struct {
	User      ProfileResponse `json:"user"`
	Token     string          `json:"token"`
	ExpiresAt int64           `json:"expires_at"`
}

// ProfileResponse mirrors the profile record.
type ProfileResponse struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         domain.Role `json:"role"`
	ProfileImage string      `json:"profileImage,omitempty"`
	CanVolunteer bool        `json:"canVolunteer"`
	IsActive     bool        `json:"isActive"`
}
