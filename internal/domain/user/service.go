package user

import "context"

type UserService interface {
	List(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id int64) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (UserResponse, error)
	UpdateProfile(ctx context.Context, actor User, id int64, req UpdateProfileRequest) (UserResponse, error)
	Delete(ctx context.Context, actor User, id int64, req DeleteUserRequest) error
}
