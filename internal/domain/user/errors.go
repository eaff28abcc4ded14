package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUsernameExists          = errors.New("username already taken")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrDirectReportsExist      = errors.New("user has direct reports; newManagerId is required to reassign them")
	ErrCannotDeleteSelf        = errors.New("cannot delete your own account")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
