package user

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc         user.UserService
	users       user.UserRepository
	departments organization.DepartmentRepository
	admin       user.User
	manager     user.User
	reports     []user.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	t.Cleanup(store.Close)

	f := fixture{
		users:       memory.NewUserRepository(store),
		departments: memory.NewDepartmentRepository(store),
	}
	mk := func(username string, role user.Role, managerID *int64) user.User {
		u, err := f.users.Create(ctx, user.User{
			Username:   username,
			FirstName:  username,
			LastName:   "Tester",
			Email:      username + "@company.com",
			Role:       role,
			Department: "Engineering",
			Position:   "Staff",
			ManagerID:  managerID,
		})
		require.NoError(t, err)
		return u
	}
	f.admin = mk("admin", user.RoleAdmin, nil)
	f.manager = mk("david", user.RoleManager, &f.admin.ID)
	f.reports = []user.User{
		mk("alice", user.RoleEmployee, &f.manager.ID),
		mk("bob", user.RoleEmployee, &f.manager.ID),
	}
	_, err := f.departments.Create(ctx, organization.Department{Name: "Engineering", HeadID: &f.manager.ID})
	require.NoError(t, err)

	f.svc = NewUserService(store, f.users, f.departments)
	return f
}

func optionalID(t *testing.T, raw string) user.OptionalID {
	t.Helper()
	var req user.DeleteUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"newManagerId":`+raw+`}`), &req))
	return req.NewManagerID
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := user.CreateUserRequest{
		Username:   "emma",
		Password:   "supersecret",
		FirstName:  "Emma",
		LastName:   "Davis",
		Email:      "emma.davis@company.com",
		Role:       user.RoleEmployee,
		Department: "Product",
		Position:   "Product Manager",
		ManagerID:  &f.admin.ID,
	}
	created, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "emma", created.Username)
	assert.Equal(t, []string{}, created.Skills)

	stored, err := f.users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))

	t.Run("duplicate username", func(t *testing.T) {
		dup := req
		dup.Email = "other@company.com"
		dup.Username = "EMMA"
		_, err := f.svc.Create(ctx, dup)
		assert.ErrorIs(t, err, user.ErrUsernameExists)
	})

	t.Run("missing manager", func(t *testing.T) {
		bad := req
		bad.Username, bad.Email = "ghostly", "ghostly@company.com"
		missing := int64(999)
		bad.ManagerID = &missing
		_, err := f.svc.Create(ctx, bad)
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.True(t, verrs.Has("managerId"))
	})

	t.Run("required fields", func(t *testing.T) {
		_, err := f.svc.Create(ctx, user.CreateUserRequest{})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		for _, field := range []string{"username", "password", "firstName", "lastName", "email", "role", "department", "position"} {
			assert.True(t, verrs.Has(field), field)
		}
	})
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var req user.UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"position":"Principal","managerId":null}`), &req))
	updated, err := f.svc.Update(ctx, f.manager.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Principal", updated.Position)
	assert.Nil(t, updated.ManagerID)
	assert.Equal(t, "david", updated.Username)

	t.Run("self as manager", func(t *testing.T) {
		var req user.UpdateUserRequest
		require.NoError(t, json.Unmarshal([]byte(`{"managerId":`+jsonID(f.manager.ID)+`}`), &req))
		_, err := f.svc.Update(ctx, f.manager.ID, req)
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
	})

	t.Run("manager chain", func(t *testing.T) {
		tests := []struct {
			name    string
			target  func(f fixture) int64
			manager func(f fixture) int64
			wantErr bool
		}{
			{"direct report as manager", func(f fixture) int64 { return f.manager.ID }, func(f fixture) int64 { return f.reports[0].ID }, true},
			{"indirect report as manager", func(f fixture) int64 { return f.admin.ID }, func(f fixture) int64 { return f.reports[0].ID }, true},
			{"sibling as manager", func(f fixture) int64 { return f.reports[0].ID }, func(f fixture) int64 { return f.reports[1].ID }, false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				var req user.UpdateUserRequest
				require.NoError(t, json.Unmarshal([]byte(`{"managerId":`+jsonID(tt.manager(f))+`}`), &req))

				_, err := f.svc.Update(ctx, tt.target(f), req)
				if !tt.wantErr {
					require.NoError(t, err)
					return
				}
				var verrs validator.ValidationErrors
				require.True(t, errors.As(err, &verrs))
				assert.True(t, verrs.Has("managerId"))

				got, err := f.users.GetByID(ctx, tt.target(f))
				require.NoError(t, err)
				if got.ManagerID != nil {
					assert.NotEqual(t, tt.manager(f), *got.ManagerID)
				}
			})
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.Update(ctx, 999, user.UpdateUserRequest{})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	phone := "+1 555 0100"

	updated, err := f.svc.UpdateProfile(ctx, f.reports[0], f.reports[0].ID, user.UpdateProfileRequest{
		ProfileFields: user.ProfileFields{Phone: &phone, Skills: []string{"Go"}},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	assert.Equal(t, []string{"Go"}, updated.Skills)

	_, err = f.svc.UpdateProfile(ctx, f.reports[0], f.reports[1].ID, user.UpdateProfileRequest{})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = f.svc.UpdateProfile(ctx, f.admin, f.reports[1].ID, user.UpdateProfileRequest{})
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("reports without newManagerId conflict", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Delete(ctx, f.admin, f.manager.ID, user.DeleteUserRequest{})
		assert.ErrorIs(t, err, user.ErrDirectReportsExist)

		_, err = f.users.GetByID(ctx, f.manager.ID)
		assert.NoError(t, err)
	})

	t.Run("reassigns then deletes", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Delete(ctx, f.admin, f.manager.ID, user.DeleteUserRequest{NewManagerID: optionalID(t, jsonID(f.admin.ID))})
		require.NoError(t, err)

		_, err = f.users.GetByID(ctx, f.manager.ID)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		for _, r := range f.reports {
			got, err := f.users.GetByID(ctx, r.ID)
			require.NoError(t, err)
			require.NotNil(t, got.ManagerID)
			assert.Equal(t, f.admin.ID, *got.ManagerID)
		}

		dept, err := f.departments.GetByName(ctx, "Engineering")
		require.NoError(t, err)
		assert.Nil(t, dept.HeadID)
	})

	t.Run("explicit null clears managers", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Delete(ctx, f.admin, f.manager.ID, user.DeleteUserRequest{NewManagerID: optionalID(t, "null")})
		require.NoError(t, err)

		got, err := f.users.GetByID(ctx, f.reports[0].ID)
		require.NoError(t, err)
		assert.Nil(t, got.ManagerID)
	})

	t.Run("cannot reassign to the deleted user", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Delete(ctx, f.admin, f.manager.ID, user.DeleteUserRequest{NewManagerID: optionalID(t, jsonID(f.manager.ID))})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.True(t, verrs.Has("newManagerId"))
	})

	t.Run("cannot reassign to one of the deleted user's reports", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Delete(ctx, f.admin, f.manager.ID, user.DeleteUserRequest{NewManagerID: optionalID(t, jsonID(f.reports[0].ID))})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.True(t, verrs.Has("newManagerId"))

		_, err = f.users.GetByID(ctx, f.manager.ID)
		assert.NoError(t, err)
	})

	t.Run("leaf user needs no reassignment", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.Delete(ctx, f.admin, f.reports[0].ID, user.DeleteUserRequest{}))
	})

	t.Run("self delete", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Delete(ctx, f.admin, f.admin.ID, user.DeleteUserRequest{})
		assert.ErrorIs(t, err, user.ErrCannotDeleteSelf)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Delete(ctx, f.admin, 999, user.DeleteUserRequest{})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
