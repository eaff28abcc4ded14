package auth

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (SessionResponse, error)
	Login(ctx context.Context, req LoginRequest) (SessionResponse, error)
	Logout(ctx context.Context, claims map[string]interface{}) error
	// Authenticate resolves verified token claims to the current user record.
	Authenticate(ctx context.Context, claims map[string]interface{}) (user.User, error)
	GoogleLoginURL(state string) (string, error)
	LoginWithGoogle(ctx context.Context, code string) (SessionResponse, error)
}
