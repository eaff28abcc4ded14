package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	ListByRoles(ctx context.Context, roles []Role) ([]User, error)
	ListByManager(ctx context.Context, managerID int64) ([]User, error)
	Update(ctx context.Context, u User) (User, error)
	// ReassignManager moves every direct report of fromID to toID (nil clears) and returns how many moved.
	ReassignManager(ctx context.Context, fromID int64, toID *int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
