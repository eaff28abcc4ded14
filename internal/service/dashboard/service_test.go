package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/sse"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	activityService "github.com/cmlabs-hris/hr-portal-backend/internal/service/activity"
	holidayService "github.com/cmlabs-hris/hr-portal-backend/internal/service/holiday"
	learningService "github.com/cmlabs-hris/hr-portal-backend/internal/service/learning"
	notificationService "github.com/cmlabs-hris/hr-portal-backend/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	t.Cleanup(store.Close)

	users := memory.NewUserRepository(store)
	holidays := memory.NewHolidayRepository(store)
	courses := memory.NewCourseRepository(store)
	progress := memory.NewProgressRepository(store)
	activities := activityService.NewActivityService(memory.NewActivityRepository(store))

	mk := func(username string, role user.Role, department string) user.User {
		u, err := users.Create(ctx, user.User{
			Username:   username,
			FirstName:  username,
			LastName:   "Tester",
			Email:      username + "@company.com",
			Role:       role,
			Department: department,
			Position:   "Staff",
		})
		require.NoError(t, err)
		return u
	}
	manager := mk("david", user.RoleManager, "Engineering")
	engineers := []user.User{mk("alice", user.RoleEmployee, "Engineering"), mk("bob", user.RoleEmployee, "Engineering"), mk("carol", user.RoleEmployee, "Engineering")}
	designer := mk("mark", user.RoleEmployee, "Design")

	today := time.Now().UTC()
	request := func(owner user.User, start, end time.Time, duration int, status holiday.Status) {
		created, err := holidays.Create(ctx, holiday.Request{UserID: owner.ID, StartDate: start, EndDate: end, Duration: duration, Status: holiday.StatusPending})
		require.NoError(t, err)
		if status != holiday.StatusPending {
			_, err = holidays.Decide(ctx, created.ID, status, manager.ID)
			require.NoError(t, err)
		}
	}
	request(engineers[0], today.AddDate(0, 0, -1), today.AddDate(0, 0, 1), 3, holiday.StatusApproved)
	request(engineers[1], today, today, 1, holiday.StatusRejected)
	request(manager, today.AddDate(0, 1, 0), today.AddDate(0, 1, 2), 3, holiday.StatusPending)
	request(manager, today.AddDate(0, -2, 0), today.AddDate(0, -2, 1), 2, holiday.StatusApproved)
	request(designer, today.AddDate(0, 0, 7), today.AddDate(0, 0, 8), 2, holiday.StatusPending)

	c, err := courses.Create(ctx, learning.Course{Title: "Go", Category: "Engineering", TotalModules: 2})
	require.NoError(t, err)
	_, err = courses.Create(ctx, learning.Course{Title: "Rust", Category: "Engineering", TotalModules: 2})
	require.NoError(t, err)
	_, err = progress.Upsert(ctx, learning.Progress{UserID: manager.ID, CourseID: c.ID, CompletedModules: 2, IsCompleted: true})
	require.NoError(t, err)

	hs := holidayService.NewHolidayService(store, holidays, users, activities,
		notificationService.NewNotificationService(memory.NewNotificationRepository(store), sse.NewHub()), nil, 25)
	ls := learningService.NewLearningService(store, courses, memory.NewModuleRepository(store), progress, activities)
	svc := NewDashboardService(hs, ls, holidays, users)

	t.Run("approver", func(t *testing.T) {
		stats, err := svc.Stats(ctx, manager)
		require.NoError(t, err)
		assert.Equal(t, dashboard.StatsResponse{
			HolidayBalance:     23,
			Accrued:            2,
			PendingRequests:    1,
			AwaitingApproval:   2,
			LearningCompletion: 50,
			TeamAvailability:   75,
		}, stats)
	})

	t.Run("employee sees no approval queue", func(t *testing.T) {
		stats, err := svc.Stats(ctx, designer)
		require.NoError(t, err)
		assert.Zero(t, stats.AwaitingApproval)
		assert.Equal(t, 1, stats.PendingRequests)
		assert.Equal(t, 100, stats.TeamAvailability)
		assert.Equal(t, 25, stats.HolidayBalance)
	})

	t.Run("empty department", func(t *testing.T) {
		stats, err := svc.Stats(ctx, user.User{ID: 999, Role: user.RoleEmployee, Department: "Nowhere"})
		require.NoError(t, err)
		assert.Equal(t, 100, stats.TeamAvailability)
	})
}
