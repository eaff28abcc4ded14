package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenRevoked           = errors.New("session has been signed out")
	ErrUnauthenticated        = errors.New("authentication required")
	ErrOAuthDisabled          = errors.New("google sign-in is not configured")
	ErrInvalidOAuthState      = errors.New("invalid oauth state")
	ErrGoogleAccountNotLinked = errors.New("no portal account uses this google email")
	ErrTooManyAttempts        = errors.New("too many login attempts, try again later")
)
