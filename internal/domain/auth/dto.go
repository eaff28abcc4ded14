package auth

import (
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r).Err()
}

// RegisterRequest is self sign-up; the role is always employee.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Department      string `json:"department" validate:"required"`
	Position        string `json:"position" validate:"required"`
}

func (r *RegisterRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.Password && !errs.Has("password") {
		errs.Add("confirmPassword", "passwords do not match")
	}
	return errs.Err()
}

// SessionResponse is returned after a successful sign-in.
type SessionResponse struct {
	Token     string            `json:"token"`
	ExpiresAt int64             `json:"expiresAt"`
	User      user.UserResponse `json:"user"`
}
