package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	google oauth.GoogleService
}

// NewAuthService wires the session layer. google may be nil when SSO is not configured.
func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service, google oauth.GoogleService) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		google:         google,
	}
}

func (a *AuthServiceImpl) session(u user.User) (auth.SessionResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.NewUserResponse(u),
	}, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SessionResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.UserRepository.Create(ctx, user.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Role:         user.RoleEmployee,
		Department:   req.Department,
		Position:     req.Position,
	})
	if err != nil {
		return auth.SessionResponse{}, err
	}

	slog.Info("user registered", "user_id", created.ID, "username", created.Username)
	return a.session(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SessionResponse{}, err
	}

	userData, err := a.UserRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionResponse{}, auth.ErrInvalidCredentials
		}
		return auth.SessionResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if userData.PasswordHash == "" {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}

	return a.session(userData)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, claims map[string]interface{}) error {
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(jti, expiry(claims["exp"]))
	return nil
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, claims map[string]interface{}) (user.User, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return user.User{}, auth.ErrInvalidToken
	}
	if jti, _ := claims["jti"].(string); jti != "" && a.Service.IsTokenRevoked(jti) {
		return user.User{}, auth.ErrTokenRevoked
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return user.User{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, auth.ErrInvalidToken
		}
		return user.User{}, fmt.Errorf("failed to load session user: %w", err)
	}
	return userData, nil
}

// GoogleLoginURL implements auth.AuthService.
func (a *AuthServiceImpl) GoogleLoginURL(state string) (string, error) {
	if a.google == nil {
		return "", auth.ErrOAuthDisabled
	}
	return a.google.RedirectURL(state), nil
}

// LoginWithGoogle implements auth.AuthService. Only existing portal accounts may sign in.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.SessionResponse, error) {
	if a.google == nil {
		return auth.SessionResponse{}, auth.ErrOAuthDisabled
	}

	profile, err := a.google.Profile(ctx, code)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}

	userData, err := a.UserRepository.GetByEmail(ctx, profile.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionResponse{}, auth.ErrGoogleAccountNotLinked
		}
		return auth.SessionResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return a.session(userData)
}

// expiry reads the exp claim, which jwx decodes as time.Time.
func expiry(v interface{}) int64 {
	switch exp := v.(type) {
	case time.Time:
		return exp.Unix()
	case float64:
		return int64(exp)
	case int64:
		return exp
	default:
		return time.Now().Add(24 * time.Hour).Unix()
	}
}
