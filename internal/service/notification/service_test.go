package notification

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/sse"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner    int64 = 1
	stranger int64 = 2
)

func setup(t *testing.T) notification.Service {
	t.Helper()
	store := memory.NewStore()
	t.Cleanup(store.Close)
	return NewNotificationService(memory.NewNotificationRepository(store), sse.NewHub())
}

func create(t *testing.T, svc notification.Service, userID int64, title string) notification.Notification {
	t.Helper()
	n, err := svc.Create(context.Background(), notification.CreateNotificationRequest{
		UserID:  userID,
		Title:   title,
		Message: title + " message",
		Type:    notification.TypeInfo,
	})
	require.NoError(t, err)
	return n
}

func TestMarkAsRead(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	n := create(t, svc, owner, "Welcome")

	t.Run("other user is rejected", func(t *testing.T) {
		_, err := svc.MarkAsRead(ctx, stranger, n.ID)
		assert.ErrorIs(t, err, notification.ErrNotOwner)

		count, err := svc.GetUnreadCount(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.MarkAsRead(ctx, owner, 999)
		assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
	})

	t.Run("owner", func(t *testing.T) {
		read, err := svc.MarkAsRead(ctx, owner, n.ID)
		require.NoError(t, err)
		assert.True(t, read.IsRead)

		again, err := svc.MarkAsRead(ctx, owner, n.ID)
		require.NoError(t, err)
		assert.True(t, again.IsRead)
	})
}

func TestListAndMarkAll(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	create(t, svc, owner, "First")
	second := create(t, svc, owner, "Second")
	create(t, svc, stranger, "Elsewhere")

	all, err := svc.List(ctx, owner, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	_, err = svc.MarkAsRead(ctx, owner, second.ID)
	require.NoError(t, err)
	unread, err := svc.List(ctx, owner, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "First", unread[0].Title)

	require.NoError(t, svc.MarkAllAsRead(ctx, owner))
	count, err := svc.GetUnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = svc.GetUnreadCount(ctx, stranger)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "mark all is scoped to the caller")
}

func TestSubscribe(t *testing.T) {
	svc := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, unsubscribe := svc.Subscribe(ctx, owner)
	defer unsubscribe()

	n := create(t, svc, owner, "Pushed")
	svc.Publish(n, create(t, svc, stranger, "Not for you"))

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, n.ID, ev.Data.ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
