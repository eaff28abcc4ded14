package fixtures_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/fixtures"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func memoryRepositories(s *memory.Store) fixtures.Repositories {
	return fixtures.Repositories{
		Transactor:  s,
		Users:       memory.NewUserRepository(s),
		Departments: memory.NewDepartmentRepository(s),
		Holidays:    memory.NewHolidayRepository(s),
		Policies:    memory.NewPolicyRepository(s),
		Courses:     memory.NewCourseRepository(s),
		Modules:     memory.NewModuleRepository(s),
		Progress:    memory.NewProgressRepository(s),
		Activities:  memory.NewActivityRepository(s),
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repos := memoryRepositories(memory.NewStore())

	ids, err := fixtures.Seed(ctx, repos)
	require.NoError(t, err)
	require.NotNil(t, ids)

	users, err := repos.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 5)

	admin, err := repos.Users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Nil(t, admin.ManagerID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(fixtures.DefaultPassword)))

	mark, err := repos.Users.GetByUsername(ctx, "mark")
	require.NoError(t, err)
	require.NotNil(t, mark.ManagerID)
	assert.Equal(t, admin.ID, *mark.ManagerID)

	departments, err := repos.Departments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 4)

	all, err := repos.Holidays.List(ctx, holiday.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 7)

	approved := holiday.StatusApproved
	decided, err := repos.Holidays.List(ctx, holiday.Filter{Status: &approved})
	require.NoError(t, err)
	assert.Len(t, decided, 2)

	policies, err := repos.Policies.List(ctx)
	require.NoError(t, err)
	assert.Len(t, policies, 4)

	courses, err := repos.Courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, 8, courses[1].TotalModules)

	modules, err := repos.Modules.ListByCourse(ctx, courses[1].ID)
	require.NoError(t, err)
	assert.Len(t, modules, 8)
	assert.Equal(t, "Module 1: Leadership Styles", modules[0].Title)

	progress, err := repos.Progress.ListByUser(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, progress, 3)

	feed, err := repos.Activities.ListByUser(ctx, admin.ID, 10)
	require.NoError(t, err)
	require.Len(t, feed, 4)
	assert.Contains(t, feed[0].Description, "Data Security Basics")
}

func TestSeed_SkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	repos := memoryRepositories(memory.NewStore())

	_, err := fixtures.Seed(ctx, repos)
	require.NoError(t, err)

	ids, err := fixtures.Seed(ctx, repos)
	require.NoError(t, err)
	assert.Nil(t, ids)

	n, err := repos.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
