package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/notification"
)

// newestFirst orders by creation time descending, then id descending.
func newestFirst(at, bt time.Time, aID, bID int64) int {
	if c := bt.Compare(at); c != 0 {
		return c
	}
	return cmp.Compare(bID, aID)
}

type activityRepository struct {
	s *Store
}

func NewActivityRepository(s *Store) activity.Repository {
	return &activityRepository{s: s}
}

func (r *activityRepository) Create(ctx context.Context, a activity.Activity) (activity.Activity, error) {
	err := r.s.write(ctx, func() error {
		a.ID = r.s.nextID(activitiesCol)
		a.CreatedAt = r.s.stamp(a.CreatedAt)
		r.s.activities[a.ID] = a
		return nil
	})
	return a, err
}

func (r *activityRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]activity.Activity, error) {
	var out []activity.Activity
	r.s.read(ctx, func() {
		for _, a := range r.s.activities {
			if a.UserID == userID {
				out = append(out, a)
			}
		}
	})
	slices.SortFunc(out, func(a, b activity.Activity) int { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type notificationRepository struct {
	s *Store
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(s *Store) notification.Repository {
	return &notificationRepository{s: s}
}

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	err := r.s.write(ctx, func() error {
		n.ID = r.s.nextID(notificationsCol)
		n.CreatedAt = r.s.stamp(n.CreatedAt)
		r.s.notifications[n.ID] = n
		return nil
	})
	return n, err
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (notification.Notification, error) {
	var (
		n  notification.Notification
		ok bool
	)
	r.s.read(ctx, func() { n, ok = r.s.notifications[id] })
	if !ok {
		return notification.Notification{}, notification.ErrNotificationNotFound
	}
	return n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]notification.Notification, error) {
	var out []notification.Notification
	r.s.read(ctx, func() {
		for _, n := range r.s.notifications {
			if n.UserID != userID || (unreadOnly && n.IsRead) {
				continue
			}
			out = append(out, n)
		}
	})
	slices.SortFunc(out, func(a, b notification.Notification) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	count := 0
	r.s.read(ctx, func() {
		for _, n := range r.s.notifications {
			if n.UserID == userID && !n.IsRead {
				count++
			}
		}
	})
	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id int64) (notification.Notification, error) {
	var n notification.Notification
	err := r.s.write(ctx, func() error {
		existing, ok := r.s.notifications[id]
		if !ok {
			return notification.ErrNotificationNotFound
		}
		existing.IsRead = true
		r.s.notifications[id] = existing
		n = existing
		return nil
	})
	return n, err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	var updated int64
	err := r.s.write(ctx, func() error {
		for id, n := range r.s.notifications {
			if n.UserID == userID && !n.IsRead {
				n.IsRead = true
				r.s.notifications[id] = n
				updated++
			}
		}
		return nil
	})
	return updated, err
}
