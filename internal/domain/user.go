package domain

// Role enumerates the kinds of participants in the relief network.
type Role string

const (
	RoleVictim     Role = "victim"
	RoleVolunteer  Role = "volunteer"
	RoleNGO        Role = "ngo"
	RoleGovernment Role = "government"
	RoleAdmin      Role = "admin"
)

// UserProfile is the profile record held for an authenticated user and
// listed in the volunteer/NGO directory.
type UserProfile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
	CanVolunteer bool   `json:"canVolunteer,omitempty"`
	IsActive     bool   `json:"isActive,omitempty"`
}
