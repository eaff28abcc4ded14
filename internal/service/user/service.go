package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	db database.Transactor
	user.UserRepository
	organization.DepartmentRepository
}

func NewUserService(db database.Transactor, userRepository user.UserRepository, departmentRepository organization.DepartmentRepository) user.UserService {
	return &UserServiceImpl{
		db:                   db,
		UserRepository:       userRepository,
		DepartmentRepository: departmentRepository,
	}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	responses := make([]user.UserResponse, len(users))
	for i, u := range users {
		responses[i] = user.NewUserResponse(u)
	}
	return responses, nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// checkManager reports a field error unless managerID names an existing user whose
// management chain does not lead back to self, which keeps managerId a tree.
func (s *UserServiceImpl) checkManager(ctx context.Context, field string, managerID *int64, self int64) error {
	if managerID == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if *managerID == self {
		errs.Add(field, "a user cannot be their own manager")
		return errs
	}

	visited := make(map[int64]struct{})
	for next := managerID; next != nil; {
		if *next == self {
			errs.Add(field, "manager reports to this user, which would create a cycle")
			return errs
		}
		if _, seen := visited[*next]; seen {
			break
		}
		visited[*next] = struct{}{}

		u, err := s.UserRepository.GetByID(ctx, *next)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) && next == managerID {
				errs.Add(field, "manager does not exist")
				return errs
			}
			if errors.Is(err, user.ErrUserNotFound) {
				break
			}
			return err
		}
		next = u.ManagerID
	}
	return nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if err := s.checkManager(ctx, "managerId", req.ManagerID, 0); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Role:         req.Role,
		Department:   req.Department,
		Position:     req.Position,
		ProfileImage: req.ProfileImage,
		ManagerID:    req.ManagerID,
	}
	req.ProfileFields.Apply(&newUser)

	created, err := s.UserRepository.Create(ctx, newUser)
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("User created", "user_id", created.ID, "role", created.Role)
	return user.NewUserResponse(created), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.ManagerID.Set {
		if err := s.checkManager(ctx, "managerId", req.ManagerID.Value, id); err != nil {
			return user.UserResponse{}, err
		}
		existing.ManagerID = req.ManagerID.Value
	}
	if req.Username != nil {
		existing.Username = *req.Username
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		existing.PasswordHash = string(hash)
	}
	if req.FirstName != nil {
		existing.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		existing.LastName = *req.LastName
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Role != nil {
		existing.Role = *req.Role
	}
	if req.Department != nil {
		existing.Department = *req.Department
	}
	if req.Position != nil {
		existing.Position = *req.Position
	}
	if req.ProfileImage != nil {
		existing.ProfileImage = req.ProfileImage
	}
	req.ProfileFields.Apply(&existing)

	updated, err := s.UserRepository.Update(ctx, existing)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, actor user.User, id int64, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if actor.ID != id && !user.Authorize(actor, user.PermissionUserManage) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.FirstName != nil {
		existing.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		existing.LastName = *req.LastName
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.ProfileImage != nil {
		existing.ProfileImage = req.ProfileImage
	}
	req.ProfileFields.Apply(&existing)

	updated, err := s.UserRepository.Update(ctx, existing)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

// Delete implements user.UserService. Direct reports must be handed to
// req.NewManagerID (which may be null) before the user can go.
func (s *UserServiceImpl) Delete(ctx context.Context, actor user.User, id int64, req user.DeleteUserRequest) error {
	if actor.ID == id {
		return user.ErrCannotDeleteSelf
	}
	if _, err := s.UserRepository.GetByID(ctx, id); err != nil {
		return err
	}

	reports, err := s.UserRepository.ListByManager(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list direct reports: %w", err)
	}
	if len(reports) > 0 {
		if !req.NewManagerID.Set {
			return user.ErrDirectReportsExist
		}
		if err := s.checkManager(ctx, "newManagerId", req.NewManagerID.Value, id); err != nil {
			return err
		}
	}

	return s.db.WithTransaction(ctx, func(ctx context.Context) error {
		if len(reports) > 0 {
			moved, err := s.UserRepository.ReassignManager(ctx, id, req.NewManagerID.Value)
			if err != nil {
				return fmt.Errorf("failed to reassign direct reports: %w", err)
			}
			slog.Info("Direct reports reassigned", "from", id, "to", req.NewManagerID.Value, "count", moved)
		}
		if err := s.DepartmentRepository.ClearHead(ctx, id); err != nil {
			return fmt.Errorf("failed to clear department head: %w", err)
		}
		if err := s.UserRepository.Delete(ctx, id); err != nil {
			return err
		}
		slog.Info("User deleted", "user_id", id, "by", actor.ID)
		return nil
	})
}
