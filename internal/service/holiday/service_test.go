package holiday

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/sse"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	activityService "github.com/cmlabs-hris/hr-portal-backend/internal/service/activity"
	notificationService "github.com/cmlabs-hris/hr-portal-backend/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	counts map[string]int
}

func (c *countingRecorder) RecordHolidayTransition(status string) {
	c.counts[status]++
}

type fixture struct {
	svc           *HolidayServiceImpl
	hub           *sse.Hub
	recorder      *countingRecorder
	activities    activity.Repository
	notifications notification.Repository
	admin         user.User
	hr            user.User
	employee      user.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	t.Cleanup(store.Close)

	users := memory.NewUserRepository(store)
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

	f := fixture{
		hub:           sse.NewHub(),
		recorder:      &countingRecorder{counts: map[string]int{}},
		activities:    memory.NewActivityRepository(store),
		notifications: memory.NewNotificationRepository(store),
	}
	f.admin = mk("admin", user.RoleAdmin, "Human Resources")
	f.hr = mk("jennifer", user.RoleHRManager, "Human Resources")
	f.employee = mk("mark", user.RoleEmployee, "Design")

	svc := NewHolidayService(
		store,
		memory.NewHolidayRepository(store),
		users,
		activityService.NewActivityService(f.activities),
		notificationService.NewNotificationService(f.notifications, f.hub),
		f.recorder,
		25,
	).(*HolidayServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func (f fixture) submit(t *testing.T, start, end string) holiday.RequestResponse {
	t.Helper()
	created, err := f.svc.Create(context.Background(), f.employee, holiday.CreateRequest{StartDate: start, EndDate: end})
	require.NoError(t, err)
	return created
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	events, cancel := f.hub.Subscribe(f.admin.ID)
	defer cancel()

	reason := "Beach"
	created, err := f.svc.Create(ctx, f.employee, holiday.CreateRequest{
		StartDate: "2024-07-01",
		EndDate:   "2024-07-07",
		Reason:    &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, holiday.StatusPending, created.Status)
	assert.Equal(t, f.employee.ID, created.UserID)
	assert.Equal(t, 5, created.Duration, "Mon-Sun spans five business days")
	require.NotNil(t, created.User)
	assert.Equal(t, "mark", created.User.FirstName)

	feed, err := f.activities.ListByUser(ctx, f.employee.ID, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, activity.TypeHolidayRequest, feed[0].Type)

	for _, approver := range []user.User{f.admin, f.hr} {
		inbox, err := f.notifications.ListByUser(ctx, approver.ID, false)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Equal(t, "New Holiday Request", inbox[0].Title)
		assert.Equal(t, notification.TypeHoliday, inbox[0].Type)
	}

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a published notification")
	}
}

func TestCreate_ApproverDoesNotNotifySelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.hr, holiday.CreateRequest{StartDate: "2024-07-01", EndDate: "2024-07-01"})
	require.NoError(t, err)

	own, err := f.notifications.CountUnread(ctx, f.hr.ID)
	require.NoError(t, err)
	assert.Zero(t, own)
	adminCount, err := f.notifications.CountUnread(ctx, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, adminCount)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.employee, holiday.CreateRequest{StartDate: "2024-07-10", EndDate: "2024-07-01"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("endDate"))

	inflated := 100
	_, err = f.svc.Create(context.Background(), f.employee, holiday.CreateRequest{StartDate: "2024-07-01", EndDate: "2024-07-01", Duration: &inflated})
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("duration"))

	requests, err := f.svc.List(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Empty(t, requests)

	balance, err := f.svc.Balance(context.Background(), f.employee.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Used)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.submit(t, "2024-07-01", "2024-07-03")

	decided, err := f.svc.UpdateStatus(ctx, f.hr, created.ID, holiday.UpdateStatusRequest{Status: holiday.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, holiday.StatusApproved, decided.Status)
	require.NotNil(t, decided.ApprovedByID)
	assert.Equal(t, f.hr.ID, *decided.ApprovedByID)
	assert.Equal(t, 1, f.recorder.counts["approved"])

	feed, err := f.activities.ListByUser(ctx, f.employee.ID, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, activity.TypeHolidayApproved, feed[0].Type)
	assert.Contains(t, feed[0].Description, "approved")

	inbox, err := f.notifications.ListByUser(ctx, f.employee.ID, false)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Holiday Request Status", inbox[0].Title)
	assert.Equal(t, notification.TypeSuccess, inbox[0].Type)

	t.Run("second decision conflicts without side effects", func(t *testing.T) {
		_, err := f.svc.UpdateStatus(ctx, f.admin, created.ID, holiday.UpdateStatusRequest{Status: holiday.StatusRejected})
		assert.ErrorIs(t, err, holiday.ErrHolidayRequestAlreadyProcessed)

		feed, err := f.activities.ListByUser(ctx, f.employee.ID, 0)
		require.NoError(t, err)
		assert.Len(t, feed, 2)
		inbox, err := f.notifications.ListByUser(ctx, f.employee.ID, false)
		require.NoError(t, err)
		assert.Len(t, inbox, 1)
		assert.Zero(t, f.recorder.counts["rejected"])
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.svc.UpdateStatus(ctx, f.admin, 999, holiday.UpdateStatusRequest{Status: holiday.StatusApproved})
		assert.ErrorIs(t, err, holiday.ErrHolidayRequestNotFound)
	})

	t.Run("invalid status leaves request pending", func(t *testing.T) {
		other := f.submit(t, "2024-08-01", "2024-08-02")
		_, err := f.svc.UpdateStatus(ctx, f.admin, other.ID, holiday.UpdateStatusRequest{Status: "maybe"})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))

		pending, err := f.svc.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, other.ID, pending[0].ID)
	})

	t.Run("rejection", func(t *testing.T) {
		other := f.submit(t, "2024-09-02", "2024-09-02")
		decided, err := f.svc.UpdateStatus(ctx, f.admin, other.ID, holiday.UpdateStatusRequest{Status: holiday.StatusRejected})
		require.NoError(t, err)
		assert.Equal(t, holiday.StatusRejected, decided.Status)

		inbox, err := f.notifications.ListByUser(ctx, f.employee.ID, false)
		require.NoError(t, err)
		assert.Equal(t, notification.TypeError, inbox[0].Type)
	})
}

func TestList_Scoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.submit(t, "2024-07-01", "2024-07-01")
	_, err := f.svc.Create(ctx, f.admin, holiday.CreateRequest{StartDate: "2024-07-02", EndDate: "2024-07-02"})
	require.NoError(t, err)

	own, err := f.svc.List(ctx, f.employee)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, f.employee.ID, own[0].UserID)

	all, err := f.svc.List(ctx, f.hr)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, r := range all {
		assert.NotNil(t, r.User)
	}
}

func TestBalanceAndUpcoming(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := f.submit(t, "2024-05-06", "2024-05-10")
	future := f.submit(t, "2024-07-01", "2024-07-02")
	rejected := f.submit(t, "2024-06-20", "2024-06-20")
	f.submit(t, "2024-06-10", "2024-06-10")

	for id, status := range map[int64]holiday.Status{
		past.ID:     holiday.StatusApproved,
		future.ID:   holiday.StatusApproved,
		rejected.ID: holiday.StatusRejected,
	} {
		_, err := f.svc.UpdateStatus(ctx, f.admin, id, holiday.UpdateStatusRequest{Status: status})
		require.NoError(t, err)
	}

	balance, err := f.svc.Balance(ctx, f.employee.ID)
	require.NoError(t, err)
	assert.Equal(t, holiday.BalanceResponse{Allowance: 25, Used: 7, Remaining: 18}, balance)

	upcoming, err := f.svc.Upcoming(ctx)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "2024-06-10", upcoming[0].StartDate.Format("2006-01-02"))
	assert.Equal(t, future.ID, upcoming[1].ID)
	for _, r := range upcoming {
		require.NotNil(t, r.User)
		assert.Equal(t, f.employee.ID, r.User.ID, "requests carry their owner for every caller")
	}
}
