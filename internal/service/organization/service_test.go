package organization

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type directory struct {
	svc   organization.Service
	users user.UserRepository
	ids   map[string]int64
}

func setup(t *testing.T) directory {
	t.Helper()
	store := memory.NewStore()
	t.Cleanup(store.Close)
	users := memory.NewUserRepository(store)
	return directory{
		svc:   NewOrganizationService(memory.NewDepartmentRepository(store), users),
		users: users,
		ids:   make(map[string]int64),
	}
}

func (d directory) add(t *testing.T, username, department, manager string) {
	t.Helper()
	u := user.User{
		Username:   username,
		FirstName:  username,
		LastName:   "Tester",
		Email:      username + "@company.com",
		Role:       user.RoleEmployee,
		Department: department,
		Position:   "Staff",
	}
	if manager != "" {
		id := d.ids[manager]
		u.ManagerID = &id
	}
	created, err := d.users.Create(context.Background(), u)
	require.NoError(t, err)
	d.ids[username] = created.ID
}

func TestCreateDepartment(t *testing.T) {
	d := setup(t)
	ctx := context.Background()
	d.add(t, "sarah", "Human Resources", "")
	head := d.ids["sarah"]

	created, err := d.svc.CreateDepartment(ctx, organization.CreateDepartmentRequest{Name: "  Human Resources ", HeadID: &head})
	require.NoError(t, err)
	assert.Equal(t, "Human Resources", created.Name)
	require.NotNil(t, created.HeadID)
	assert.Equal(t, head, *created.HeadID)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := d.svc.CreateDepartment(ctx, organization.CreateDepartmentRequest{Name: "human resources"})
		assert.ErrorIs(t, err, organization.ErrDepartmentNameExists)
	})

	t.Run("unknown head", func(t *testing.T) {
		missing := int64(999)
		_, err := d.svc.CreateDepartment(ctx, organization.CreateDepartmentRequest{Name: "Finance", HeadID: &missing})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.True(t, verrs.Has("headId"))
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := d.svc.CreateDepartment(ctx, organization.CreateDepartmentRequest{Name: "   "})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.True(t, verrs.Has("name"))
	})

	departments, err := d.svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 1)
}

func TestChart(t *testing.T) {
	d := setup(t)
	ctx := context.Background()

	d.add(t, "david", "Engineering", "")
	d.add(t, "lead", "Engineering", "david")
	d.add(t, "alice", "Engineering", "lead")
	d.add(t, "bob", "Engineering", "lead")
	d.add(t, "carol", "Engineering", "")
	d.add(t, "mark", "Design", "david")

	head := d.ids["david"]
	_, err := d.svc.CreateDepartment(ctx, organization.CreateDepartmentRequest{Name: "Engineering", HeadID: &head})
	require.NoError(t, err)
	_, err = d.svc.CreateDepartment(ctx, organization.CreateDepartmentRequest{Name: "Design"})
	require.NoError(t, err)

	charts, err := d.svc.Chart(ctx)
	require.NoError(t, err)
	require.Len(t, charts, 2)

	eng := charts[0]
	assert.Equal(t, "Engineering", eng.Department.Name)
	require.NotNil(t, eng.Head)
	assert.Equal(t, head, eng.Head.ID)

	require.Len(t, eng.Managers, 2)
	assert.Equal(t, head, eng.Managers[0].Manager.ID)
	require.Len(t, eng.Managers[0].Reports, 1)
	assert.Equal(t, d.ids["lead"], eng.Managers[0].Reports[0].ID)
	assert.Equal(t, d.ids["lead"], eng.Managers[1].Manager.ID)
	assert.Len(t, eng.Managers[1].Reports, 2)

	require.Len(t, eng.Unassigned, 1)
	assert.Equal(t, d.ids["carol"], eng.Unassigned[0].ID)

	design := charts[1]
	assert.Nil(t, design.Head)
	assert.Empty(t, design.Managers)
	require.Len(t, design.Unassigned, 1, "a manager outside the department leaves the member unassigned")
	assert.Equal(t, d.ids["mark"], design.Unassigned[0].ID)

	members, err := d.svc.Members(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 6)
}
