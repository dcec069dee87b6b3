package dto

import "github.com/spec-kit/marketplace-auth/internal/domain"

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the caller-facing projection of a credential record. The
// password hash never appears here.
type UserView struct {
	ID               string      `json:"id"`
	Email            string      `json:"email"`
	Name             string      `json:"name"`
	Role             domain.Role `json:"role"`
	ProfileCompleted bool        `json:"profile_completed"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserView `json:"user"`
}

// NewUserView projects a credential record.
func NewUserView(user *domain.User) UserView {
	return UserView{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Role:             user.Role,
		ProfileCompleted: user.ProfileCompleted,
	}
}
